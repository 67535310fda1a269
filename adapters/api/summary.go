package api

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gocirc/domain/circular"
)

// RenderSummaryMarkdown writes the report as a markdown document: one section
// per population with its descriptives table, the common-median test and the
// FDR-corrected pairwise comparisons.
func RenderSummaryMarkdown(report *circular.AnalysisReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis %s\n\n", report.RunID)
	fmt.Fprintf(&b, "%d observations across %d populations. ", report.Observations, len(report.Populations))
	fmt.Fprintf(&b, "Permutations: %d, FDR level: %.3f, alpha: %.3f, seed: %d.\n\n",
		report.Params.NSim, report.Params.FDRLevel, report.Params.Alpha, report.Params.Seed)

	for _, pop := range report.Populations {
		fmt.Fprintf(&b, "## Population %s\n\n", pop.Population)

		b.WriteString("| Condition | N | Mean (deg) | R | Variance | Rayleigh p | CI |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, g := range pop.Groups {
			ci := "undefined"
			if g.CIDefined {
				ci = fmt.Sprintf("[%s, %s]", fmtAngle(g.MeanCILowerDeg), fmtAngle(g.MeanCIUpperDeg))
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
				g.Group.Condition, g.N, fmtAngle(g.MeanDeg),
				fmtFloat(g.ResultantLength), fmtFloat(g.CircularVariance),
				fmtFloat(g.RayleighP), ci)
		}
		b.WriteString("\n")

		cm := pop.CommonMedian
		if cm.Applicable {
			fmt.Fprintf(&b, "Common median test over %d groups: statistic %s, p = %s.\n\n",
				cm.GroupCount, fmtFloat(cm.Statistic), fmtFloat(cm.PValue))
		} else {
			b.WriteString("Common median test: not applicable (fewer than two groups with data).\n\n")
		}

		if len(pop.Pairwise) > 0 {
			b.WriteString("| Comparison | nA | nB | Kuiper V | p raw | p adj | Significant |\n")
			b.WriteString("|---|---|---|---|---|---|---|\n")
			for _, pr := range pop.Pairwise {
				if pr.Skipped {
					fmt.Fprintf(&b, "| %s vs %s | %d | %d | skipped (%s) | | | |\n",
						pr.ConditionA, pr.ConditionB, pr.NA, pr.NB, pr.SkipReason)
					continue
				}
				praw := fmt.Sprintf("%.4g", pr.PRaw)
				if pr.PBelowResolution {
					praw = fmt.Sprintf("< %.4g", pr.PRaw)
				}
				sig := "no"
				if pr.Significant {
					sig = "yes"
				}
				fmt.Fprintf(&b, "| %s vs %s | %d | %d | %.4f | %s | %.4g | %s |\n",
					pr.ConditionA, pr.ConditionB, pr.NA, pr.NB,
					pr.Statistic, praw, pr.PAdjusted, sig)
			}
			b.WriteString("\n")
		}

		if len(pop.Warnings) > 0 {
			b.WriteString("Warnings: ")
			for i, wc := range pop.Warnings {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(string(wc))
			}
			b.WriteString("\n\n")
		}
	}

	return []byte(b.String())
}

// RenderSummaryHTML renders the markdown summary to a standalone HTML page.
func RenderSummaryHTML(report *circular.AnalysisReport) []byte {
	md := RenderSummaryMarkdown(report)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("Analysis %s", report.RunID),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func fmtFloat(f circular.Float) string {
	if !f.IsDefined() {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", float64(f))
}

func fmtAngle(f circular.Float) string {
	if !f.IsDefined() {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", float64(f))
}
