// Package formatter renders a run result as text, JSON, or CSV. The text
// mode is the consultant-facing report with color-coded ratings; JSON is
// the full result document; CSV is the audit trail in tabular form.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"contact-navigator/models"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// FormatText returns the human-readable report for a run.
func FormatText(result *models.RunResult) string {
	var sb strings.Builder

	sb.WriteString(bold("CONTACT TRANSFORMATION BENEFITS CASE") + "\n")
	sb.WriteString(fmt.Sprintf("run %s | generated %s | scenario %s\n",
		result.RunID, result.GeneratedAt.Format("2006-01-02 15:04:05 MST"), result.Scenario))
	sb.WriteString(fmt.Sprintf("baseline: %.0f FTE | %.0f contacts/yr (factor %.0f) | $%.2f per contact\n",
		result.TotalBaselineFTE, result.AnnualVolume, result.AnnualizationFactor,
		result.Financials.CostPerContact))

	for _, w := range result.Warnings {
		sb.WriteString(yellow("warning: ") + w + "\n")
	}

	writeDiagnostic(&sb, result.Diagnostic)
	writePools(&sb, result.Pools)
	writeAudit(&sb, result.Audit)
	writeRoles(&sb, result.RoleImpacts)
	writeFinancials(&sb, result.Financials)
	writeWorkforce(&sb, result.Workforce)
	writeRisk(&sb, result.Risk)
	writeScenarios(&sb, result)
	writeSensitivity(&sb, result.Sensitivity)

	return sb.String()
}

// FormatJSON returns the full result document.
func FormatJSON(result *models.RunResult) string {
	jsonBytes, _ := json.MarshalIndent(result, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the audit trail as CSV, one row per netted initiative
// with the phased FTE vector spread over year columns.
func FormatCSV(result *models.RunResult) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Initiative ID", "Name", "Layer", "Lever", "Score",
		"Gross FTE", "Net FTE", "Gross Saving", "Net Saving", "Cap Reason",
	}
	for y := 1; y <= result.Financials.HorizonYears; y++ {
		header = append(header, fmt.Sprintf("Year %d FTE", y))
	}
	header = append(header, "Mechanism")
	writer.Write(header)

	for _, e := range result.Audit {
		row := []string{
			e.InitiativeID,
			e.Initiative,
			fmt.Sprintf("%d", e.Layer),
			string(e.Lever),
			fmt.Sprintf("%.1f", e.Score),
			fmt.Sprintf("%.1f", e.GrossFTE),
			fmt.Sprintf("%.1f", e.NetFTE),
			fmt.Sprintf("%.0f", e.GrossCost),
			fmt.Sprintf("%.0f", e.NetCost),
			string(e.CapReason),
		}
		for y := 0; y < result.Financials.HorizonYears; y++ {
			v := 0.0
			if y < len(e.PhasedFTE) {
				v = e.PhasedFTE[y]
			}
			row = append(row, fmt.Sprintf("%.1f", v))
		}
		row = append(row, e.Mechanism)
		writer.Write(row)
	}

	writer.Flush()
	return sb.String()
}

func writeDiagnostic(sb *strings.Builder, diag *models.DiagnosticReport) {
	if diag == nil {
		return
	}
	sb.WriteString("\n" + bold("DIAGNOSTIC") + fmt.Sprintf("  overall %.1f %s\n",
		diag.OverallScore, colorRating(diag.Rating)))
	for _, m := range diag.Metrics {
		sb.WriteString(fmt.Sprintf("  %-11s baseline %8.2f | benchmark %8.2f | gap %+6.1f%% | score %5.1f %s\n",
			m.Metric, m.Baseline, m.Benchmark, m.Gap*100, m.Score, colorRating(m.Rating)))
	}
}

func writePools(sb *strings.Builder, reports []models.PoolReport) {
	if len(reports) == 0 {
		return
	}
	sb.WriteString("\n" + bold("OPPORTUNITY POOLS") + "\n")
	sb.WriteString(fmt.Sprintf("  %-21s %14s %-11s %9s %9s %9s %6s\n",
		"lever", "ceiling", "unit", "fte", "consumed", "remaining", "util"))
	for _, p := range reports {
		util := fmt.Sprintf("%.0f%%", p.Utilization*100)
		switch {
		case p.Utilization >= 0.90:
			util = red(util)
		case p.Utilization >= 0.60:
			util = yellow(util)
		}
		sb.WriteString(fmt.Sprintf("  %-21s %14.0f %-11s %9.1f %9.1f %9.1f %6s\n",
			p.Lever, p.Ceiling, p.Unit, p.CeilingFTE, p.ConsumedFTE, p.RemainingFTE, util))
	}
}

func writeAudit(sb *strings.Builder, audit []models.AuditEntry) {
	if len(audit) == 0 {
		return
	}
	sb.WriteString("\n" + bold("NETTING WATERFALL") + "\n")
	for _, e := range audit {
		if e.Lever.CostOnly() {
			sb.WriteString(fmt.Sprintf("  L%d %-20s %-6s score %5.1f | saving $%.0f -> $%.0f %s\n",
				e.Layer, e.Lever, e.InitiativeID, e.Score, e.GrossCost, e.NetCost, colorReason(e.CapReason)))
			continue
		}
		sb.WriteString(fmt.Sprintf("  L%d %-20s %-6s score %5.1f | gross %6.1f -> net %6.1f FTE %s\n",
			e.Layer, e.Lever, e.InitiativeID, e.Score, e.GrossFTE, e.NetFTE, colorReason(e.CapReason)))
	}
}

func writeRoles(sb *strings.Builder, impacts []models.RoleImpact) {
	if len(impacts) == 0 {
		return
	}
	sb.WriteString("\n" + bold("ROLE IMPACT") + "\n")
	for _, ri := range impacts {
		sb.WriteString(fmt.Sprintf("  %-28s baseline %7.1f | net -%6.1f (%.1f%%)\n",
			ri.Role, ri.BaselineFTE, ri.NetFTE, ri.ReductionShare*100))
	}
}

func writeFinancials(sb *strings.Builder, fin models.FinancialSummary) {
	sb.WriteString("\n" + bold("FINANCIALS") + fmt.Sprintf("  %d-year horizon at %.0f%% discount\n",
		fin.HorizonYears, fin.DiscountRate*100))
	sb.WriteString(fmt.Sprintf("  investment: %s (base %s + change mgmt %s + training %s + contingency %s)\n",
		money(fin.Investment.Total), money(fin.Investment.Base), money(fin.Investment.ChangeManagement),
		money(fin.Investment.Training), money(fin.Investment.Contingency)))
	for y := 0; y < fin.HorizonYears; y++ {
		sb.WriteString(fmt.Sprintf("  year %d: benefit %s | cost %s | net %s\n",
			y+1, money(fin.YearlyBenefits[y]), money(fin.YearlyCosts[y]), money(fin.NetCashFlow[y+1])))
	}
	sb.WriteString(fmt.Sprintf("  NPV %s | IRR %s | payback %s | total benefit %s\n",
		money(fin.NPV), irrString(fin.IRR), paybackString(fin.PaybackMonths), money(fin.TotalBenefit)))
}

func writeWorkforce(sb *strings.Builder, plan *models.WorkforcePlan) {
	if plan == nil {
		return
	}
	sb.WriteString("\n" + bold("WORKFORCE TRANSITION") + "\n")
	sb.WriteString(fmt.Sprintf("  reduce %.1f FTE: attrition %.1f | redeploy %.1f | separate %.1f\n",
		plan.TotalReduction, plan.AttritionAbsorbed, plan.Redeployed, plan.Separations))
	sb.WriteString(fmt.Sprintf("  transition cost %s (reskill %s + severance %s)\n",
		money(plan.TransitionCost), money(plan.ReskillCost), money(plan.SeveranceCost)))
}

func writeRisk(sb *strings.Builder, report *models.RiskReport) {
	if report == nil {
		return
	}
	sb.WriteString("\n" + bold("DELIVERY RISK") + fmt.Sprintf("  overall %.1f %s\n",
		report.OverallScore, colorRisk(report.Level)))
	for _, f := range report.Factors {
		sb.WriteString(fmt.Sprintf("  %-15s %5.1f  %s\n", f.Category, f.Score, strings.Join(f.Drivers, "; ")))
		if f.Mitigation != "" {
			sb.WriteString(fmt.Sprintf("  %-15s        -> %s\n", "", f.Mitigation))
		}
	}
}

func writeScenarios(sb *strings.Builder, result *models.RunResult) {
	if len(result.Scenarios) == 0 {
		return
	}
	sb.WriteString("\n" + bold("SCENARIOS") + "\n")
	for _, name := range []string{"conservative", "base", "aggressive"} {
		sc, ok := result.Scenarios[name]
		if !ok {
			continue
		}
		marker := "  "
		if name == result.Scenario {
			marker = bold("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%-13s net %7.1f FTE | benefit %s | investment %s | NPV %s | IRR %s\n",
			marker, sc.Name, sc.NetFTE, money(sc.TotalBenefit), money(sc.Investment),
			money(sc.NPV), irrString(sc.IRR)))
	}
}

func writeSensitivity(sb *strings.Builder, results []models.SensitivityResult) {
	if len(results) == 0 {
		return
	}
	sb.WriteString("\n" + bold("SENSITIVITY (+/-20%)") + "\n")
	for _, s := range results {
		sb.WriteString(fmt.Sprintf("  %-22s NPV %s .. %s | swing %s\n",
			s.Variable, money(s.NPVLow), money(s.NPVHigh), money(s.Swing)))
	}
}

func colorRating(rating string) string {
	switch rating {
	case "green":
		return green(rating)
	case "amber":
		return yellow(rating)
	case "red":
		return red(rating)
	}
	return rating
}

func colorRisk(level string) string {
	switch level {
	case "low":
		return green(level)
	case "medium":
		return yellow(level)
	case "high":
		return red(level)
	}
	return level
}

func colorReason(reason models.CapReason) string {
	s := "[" + string(reason) + "]"
	switch reason {
	case models.CapReasonFull:
		return green(s)
	case models.CapReasonPoolCap, models.CapReasonSafetyCap:
		return yellow(s)
	case models.CapReasonUnknownLever:
		return red(s)
	}
	return s
}

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s$%.0fk", sign, v/1e3)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

func irrString(irr *float64) string {
	if irr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *irr*100)
}

func paybackString(months *float64) string {
	if months == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f months", *months)
}
