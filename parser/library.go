package parser

import "contact-navigator/models"

// DefaultCatalog returns the built-in initiative library used when no
// catalog file is supplied. Entries with Score 0 carry scoring attributes
// instead; the scoring step derives their score before netting.
func DefaultCatalog() []models.Initiative {
	return []models.Initiative{
		// Layer 1: quick wins.
		{
			ID: "AI01", Name: "FAQ virtual assistant", Layer: 1,
			Lever: models.LeverDeflection, Score: 86, Enabled: true,
			Description:    "Containment of high-repeatability informational intents through a scripted virtual assistant.",
			PlatformFamily: "conversational_ai",
			ImpactRate:     0.30, Adoption: 0.65,
			StartMonth: 2, RampMonths: 8,
			InvestmentBase: 450000,
		},
		{
			ID: "AI02", Name: "Order status self-service flows", Layer: 1,
			Lever: models.LeverDeflection, Score: 78, Enabled: true,
			PlatformFamily: "conversational_ai",
			ImpactRate:     0.22, Adoption: 0.70,
			StartMonth: 1, RampMonths: 6,
			InvestmentBase: 180000,
		},
		{
			ID: "AI05", Name: "Proactive outage and delivery notifications", Layer: 1,
			Lever: models.LeverDeflection, Score: 74, Enabled: true,
			PlatformFamily: "notifications",
			ImpactRate:     0.15, Adoption: 0.80,
			StartMonth: 3, RampMonths: 6,
			InvestmentBase: 150000,
		},
		{
			ID: "OP07", Name: "Call-reason taxonomy cleanup", Layer: 1,
			Lever: models.LeverRepeatReduction, Score: 66, Enabled: true,
			PlatformFamily: "process",
			ImpactRate:     0.12, Adoption: 0.75,
			StartMonth: 1, RampMonths: 4,
			InvestmentBase: 60000,
		},
		{
			ID: "OP08", Name: "Targeted QA coaching on wrap discipline", Layer: 1,
			Lever: models.LeverAHTReduction, Score: 64, Enabled: true,
			PlatformFamily:    "qa_analytics",
			SecondsPerContact: 20, Adoption: 0.70,
			StartMonth: 1, RampMonths: 5,
			InvestmentBase: 90000,
		},
		{
			ID: "OP05", Name: "Schedule adherence program", Layer: 1,
			Lever: models.LeverShrinkageReduction, Score: 61, Enabled: true,
			PlatformFamily: "wfm",
			ImpactRate:     0.04, Adoption: 0.85,
			StartMonth: 2, RampMonths: 6,
			InvestmentBase: 120000,
		},

		// Layer 2: core transformation.
		{
			ID: "AI03", Name: "Agent-assist knowledge surfacing", Layer: 2,
			Lever: models.LeverAHTReduction, Score: 84, Enabled: true,
			Description:       "In-call retrieval of account context and next steps, cutting search time.",
			PlatformFamily:    "agent_assist",
			SecondsPerContact: 45, Adoption: 0.60,
			StartMonth: 4, RampMonths: 10,
			InvestmentBase: 600000,
		},
		{
			ID: "AI04", Name: "Automatic contact summarization", Layer: 2,
			Lever: models.LeverAHTReduction, Score: 80, Enabled: true,
			PlatformFamily:    "agent_assist",
			SecondsPerContact: 40, Adoption: 0.70,
			StartMonth: 4, RampMonths: 8,
			InvestmentBase: 350000,
		},
		{
			ID: "AI06", Name: "Conversational IVR intent capture", Layer: 2,
			Lever: models.LeverTransferReduction, Score: 77, Enabled: true,
			PlatformFamily: "conversational_ai",
			ImpactRate:     0.35, Adoption: 0.70,
			StartMonth: 4, RampMonths: 8,
			InvestmentBase: 400000,
		},
		{
			ID: "AI07", Name: "Real-time escalation coaching", Layer: 2,
			Lever: models.LeverEscalationReduction, Score: 72, Enabled: true,
			PlatformFamily: "agent_assist",
			ImpactRate:     0.30, Adoption: 0.55,
			StartMonth: 5, RampMonths: 9,
			InvestmentBase: 280000,
		},
		{
			ID: "AI08", Name: "Next-best-action on repeat drivers", Layer: 2,
			Lever: models.LeverRepeatReduction, Score: 75, Enabled: true,
			PlatformFamily: "agent_assist",
			ImpactRate:     0.22, Adoption: 0.60,
			StartMonth: 5, RampMonths: 9,
			InvestmentBase: 320000,
		},
		{
			ID: "AI09", Name: "Voice biometrics authentication", Layer: 2,
			Lever: models.LeverAHTReduction, Score: 69, Enabled: true,
			PlatformFamily:    "security",
			SecondsPerContact: 25, Adoption: 0.65,
			StartMonth: 6, RampMonths: 8,
			InvestmentBase: 380000,
		},
		{
			ID: "OP01", Name: "Knowledge base consolidation", Layer: 2,
			Lever: models.LeverAHTReduction, Score: 70, Enabled: true,
			PlatformFamily:    "knowledge",
			SecondsPerContact: 30, Adoption: 0.75,
			StartMonth: 2, RampMonths: 8,
			InvestmentBase: 250000,
		},
		{
			ID: "OP02", Name: "First-contact resolution program", Layer: 2,
			Lever: models.LeverRepeatReduction, Score: 73, Enabled: true,
			PlatformFamily: "process",
			ImpactRate:     0.25, Adoption: 0.65,
			StartMonth: 3, RampMonths: 9,
			InvestmentBase: 200000,
		},
		{
			ID: "OP03", Name: "Transfer matrix redesign", Layer: 2,
			Lever: models.LeverTransferReduction, Score: 68, Enabled: true,
			PlatformFamily: "process",
			ImpactRate:     0.40, Adoption: 0.80,
			StartMonth: 2, RampMonths: 6,
			InvestmentBase: 110000,
		},
		{
			ID: "OP04", Name: "Escalation playbooks and empowerment limits", Layer: 2,
			Lever: models.LeverEscalationReduction, Score: 67, Enabled: true,
			PlatformFamily: "process",
			ImpactRate:     0.35, Adoption: 0.75,
			StartMonth: 3, RampMonths: 6,
			InvestmentBase: 95000,
		},
		{
			ID: "OP06", Name: "Absence and occupancy management", Layer: 2,
			Lever: models.LeverShrinkageReduction, Score: 60, Enabled: true,
			PlatformFamily: "wfm",
			ImpactRate:     0.03, Adoption: 0.80,
			StartMonth: 3, RampMonths: 8,
			InvestmentBase: 140000,
		},
		{
			ID: "AI12", Name: "Copilot for complex case research", Layer: 2,
			Lever: models.LeverAHTReduction, Enabled: true,
			PlatformFamily:    "agent_assist",
			SecondsPerContact: 35, Adoption: 0.50,
			StartMonth: 7, RampMonths: 10,
			InvestmentBase: 420000,
			Value:          4.2, Readiness: 3.0, ComplexityScore: 3.5,
			RiskScore: 2.8, Alignment: 4.0,
		},
		{
			ID: "OP11", Name: "Intelligent callback and virtual hold", Layer: 2,
			Lever: models.LeverDeflection, Enabled: true,
			PlatformFamily: "wfm",
			ImpactRate:     0.08, Adoption: 0.70,
			StartMonth: 4, RampMonths: 6,
			InvestmentBase: 130000,
			Value:          3.2, Readiness: 3.8, ComplexityScore: 2.2,
			RiskScore: 2.0, Alignment: 3.5,
		},

		// Layer 3: structural.
		{
			ID: "LS01", Name: "Nearshore migration wave 1", Layer: 3,
			Lever: models.LeverCostReduction, Score: 71, Enabled: true,
			Description:    "Move migratable voice and back-office positions to the nearshore hub.",
			PlatformFamily: "location",
			ImpactRate:     0.40, Adoption: 0.90,
			StartMonth: 6, RampMonths: 12,
			InvestmentBase: 900000,
		},
		{
			ID: "LS02", Name: "Back-office offshore consolidation", Layer: 3,
			Lever: models.LeverCostReduction, Score: 65, Enabled: true,
			PlatformFamily: "location",
			ImpactRate:     0.30, Adoption: 0.85,
			StartMonth: 9, RampMonths: 12,
			InvestmentBase: 750000,
		},
		{
			ID: "LS03", Name: "Home-working flex pool", Layer: 3,
			Lever: models.LeverShrinkageReduction, Score: 62, Enabled: true,
			PlatformFamily: "wfm",
			ImpactRate:     0.02, Adoption: 0.75,
			StartMonth: 6, RampMonths: 9,
			InvestmentBase: 160000,
		},
		{
			ID: "LS04", Name: "Site consolidation and flex estate", Layer: 3,
			Lever: models.LeverCostReduction, Score: 58, Enabled: true,
			PlatformFamily: "location",
			ImpactRate:     0.20, Adoption: 0.90,
			StartMonth: 12, RampMonths: 12,
			InvestmentBase: 500000,
		},
		{
			ID: "LS05", Name: "Global capability-centre consolidation", Layer: 3,
			Lever: models.LeverCostReduction, Enabled: true,
			PlatformFamily: "location",
			ImpactRate:     0.25, Adoption: 0.85,
			StartMonth: 14, RampMonths: 12,
			InvestmentBase: 650000,
			Value:          3.8, Readiness: 2.2, ComplexityScore: 4.2,
			RiskScore: 3.9, Alignment: 3.6,
		},
	}
}
