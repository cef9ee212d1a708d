package reporting

import (
	"html/template"
	"strings"

	"github.com/jbiddulph/localseo/internal/domain"
)

// reportTemplate é a página pública do relatório compartilhado. Renderização
// no servidor, sem dependências de frontend.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Relatório de ranking — {{.Cohort.Name}}</title>
<style>
body { font-family: -apple-system, Segoe UI, Roboto, sans-serif; margin: 2rem auto; max-width: 760px; color: #1a202c; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #e2e8f0; }
.delta-up { color: #2f855a; }
.delta-down { color: #c53030; }
.muted { color: #718096; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Cohort.Name}}</h1>
<p class="muted">
	{{with .Cohort.Keyword}}Palavra-chave: <strong>{{.}}</strong> · {{end}}
	Postcode: <strong>{{.Cohort.Postcode}}</strong>
	{{if .LatestSnapshot}} · Snapshot de {{.LatestSnapshot.CreatedAt.Format "02/01/2006 15:04"}} UTC{{end}}
</p>

{{if .Deltas}}
<h2>Maiores movimentações</h2>
<ul>
{{range .Deltas}}
	<li>{{.Name}}: <span class="{{if ge .Delta 0}}delta-up{{else}}delta-down{{end}}">{{if ge .Delta 0}}+{{.Delta}}{{else}}{{.Delta}}{{end}}</span></li>
{{end}}
</ul>
{{end}}

<h2>Ranking atual</h2>
<table>
<thead><tr><th>#</th><th>Nome</th><th>Nota</th><th>Avaliações</th><th>Endereço</th></tr></thead>
<tbody>
{{range .Items}}
<tr>
	<td>{{.Rank}}</td>
	<td>{{.Name}}</td>
	<td>{{with .Rating}}{{.}}{{else}}—{{end}}</td>
	<td>{{with .UserRatingsTotal}}{{.}}{{else}}—{{end}}</td>
	<td>{{with .Vicinity}}{{.}}{{else}}—{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
</body>
</html>`))

// RenderHTML renderiza a página pública do relatório
func (s *Service) RenderHTML(data *domain.ReportData) (string, error) {
	var out strings.Builder
	if err := reportTemplate.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
