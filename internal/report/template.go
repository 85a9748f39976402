package report

import "html/template"

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    line-height: 1.6; color: #333; background-color: #f5f5f5; padding: 20px;
}
.container {
    max-width: 1200px; margin: 0 auto; background: white; padding: 40px;
    border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
header { border-bottom: 2px solid #e0e0e0; padding-bottom: 20px; margin-bottom: 30px; }
h1 { color: #2196F3; margin-bottom: 10px; }
.timestamp { color: #666; font-size: 0.9em; }
section { margin-bottom: 40px; }
h2 { color: #2196F3; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 1px solid #e0e0e0; }
.metrics {
    display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 20px; margin-top: 20px;
}
.metric { text-align: center; padding: 20px; background: #f9f9f9; border-radius: 8px; }
.metric-value { font-size: 2.5em; font-weight: bold; margin-bottom: 10px; }
.metric-label { color: #666; font-size: 0.9em; text-transform: uppercase; }
.answer-text { background: #f9f9f9; padding: 20px; border-radius: 8px; line-height: 1.8; font-size: 1.1em; }
mark.unsupported {
    background-color: #ffebee; color: #c62828; padding: 2px 4px;
    border-radius: 3px; cursor: help;
}
.claims-list { display: flex; flex-direction: column; gap: 15px; }
.claim-item { padding: 20px; border-radius: 8px; border-left: 4px solid; }
.claim-item.supported { background-color: #e8f5e9; border-left-color: #4CAF50; }
.claim-item.unsupported { background-color: #ffebee; border-left-color: #f44336; }
.claim-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 10px; }
.claim-number { font-weight: bold; color: #666; }
.claim-status { padding: 5px 10px; border-radius: 4px; font-size: 0.9em; color: white; }
.claim-status.supported { background-color: #4CAF50; }
.claim-status.unsupported { background-color: #f44336; }
.claim-text { margin-bottom: 10px; font-size: 1.05em; }
.evidence-ids { color: #555; font-size: 0.95em; }
.passage-id { font-weight: bold; color: #2196F3; margin-right: 6px; }
.missing-info {
    margin-top: 12px; padding: 10px; background: #fff3cd;
    border-left: 3px solid #ffc107; border-radius: 4px;
}
.citation-note { margin-top: 12px; font-size: 0.95em; color: #555; }
.citation-note.mismatch { color: #c62828; }
.feedback-list { list-style: none; padding: 0; }
.feedback-list li {
    padding: 15px; margin-bottom: 10px; background: #e3f2fd;
    border-left: 4px solid #2196F3; border-radius: 4px;
}
</style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{.Title}}</h1>
        <p class="timestamp">Generated on {{.GeneratedAt}}</p>
    </header>

    <section class="summary">
        <h2>Summary</h2>
        <div class="metrics">
            <div class="metric">
                <div class="metric-value" style="color: {{.CoverageColor}};">{{.CoveragePct}}%</div>
                <div class="metric-label">Evidence Coverage</div>
            </div>
            <div class="metric">
                <div class="metric-value">{{.TotalClaims}}</div>
                <div class="metric-label">Total Claims</div>
            </div>
            <div class="metric">
                <div class="metric-value" style="color: #4CAF50;">{{.Supported}}</div>
                <div class="metric-label">Supported</div>
            </div>
            <div class="metric">
                <div class="metric-value" style="color: #f44336;">{{.Unsupported}}</div>
                <div class="metric-label">Unsupported</div>
            </div>
        </div>
    </section>

    <section class="answer">
        <h2>Answer Analysis</h2>
        <div class="answer-text">{{.Answer}}</div>
    </section>

    <section class="claims">
        <h2>Claim-by-Claim Analysis</h2>
        <div class="claims-list">
        {{range .Claims}}
            <div class="claim-item {{if .Supported}}supported{{else}}unsupported{{end}}">
                <div class="claim-header">
                    <span class="claim-number">Claim {{.Number}}</span>
                    <span class="claim-status {{if .Supported}}supported{{else}}unsupported{{end}}">{{.StatusText}} (confidence: {{.Confidence}})</span>
                </div>
                <div class="claim-text">{{.Text}}</div>
                {{if .Evidence}}
                <div class="evidence-ids">Evidence:
                    {{range .Evidence}}<span class="passage-id">[{{.}}]</span>{{end}}
                </div>
                {{end}}
                {{if .MissingInfo}}<div class="missing-info"><strong>Missing:</strong> {{.MissingInfo}}</div>{{end}}
                {{with .Citation}}
                <div class="citation-note{{if not .Matches}} mismatch{{end}}">
                    Cites {{range .Cited}}<span class="passage-id">[{{.}}]</span>{{end}}
                    {{- if .Matches}} and the cited passages match the supporting evidence.{{else}} but the cited passages do not match the supporting evidence.{{end}}
                    {{if .Spam}}Flagged as citation stuffing.{{end}}
                </div>
                {{end}}
            </div>
        {{end}}
        </div>
    </section>

    {{if .Feedback}}
    <section class="feedback">
        <h2>Actionable Feedback</h2>
        <ul class="feedback-list">
        {{range .Feedback}}<li>{{.}}</li>{{end}}
        </ul>
    </section>
    {{end}}

    {{with .Citations}}
    <section class="citations">
        <h2>Citation Quality</h2>
        <div class="metrics">
            <div class="metric">
                <div class="metric-value" style="color: {{.QualityColor}};">{{.QualityPct}}%</div>
                <div class="metric-label">Citation Quality</div>
            </div>
            <div class="metric">
                <div class="metric-value">{{.Total}}</div>
                <div class="metric-label">Cited Claims</div>
            </div>
            <div class="metric">
                <div class="metric-value" style="color: {{if gt .SpamCount 0}}#f44336{{else}}#4CAF50{{end}};">{{.SpamCount}}</div>
                <div class="metric-label">Stuffed Citations</div>
            </div>
        </div>
    </section>
    {{end}}
</div>
</body>
</html>
`
