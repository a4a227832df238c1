package render

import (
	"bytes"
	"html/template"
	"strings"
)

var widgetTemplate = template.Must(template.New("widget").Funcs(template.FuncMap{
	"classes": func(names []string) string { return strings.Join(names, " ") },
}).Parse(`{{if .ShowBar -}}
<div class="` + ClassWrapper + `">
  <div class="{{classes .ContainerClasses}}"{{if .Clickable}} role="button" tabindex="0"{{end}}>
    <div class="{{classes .BarClasses}}" style="width: {{.Width}};">{{.Label}}</div>
  </div>
{{- if .Alert}}
  <div class="` + ClassAlert + `">{{.Alert}}</div>
{{- end}}
</div>
{{- else -}}
<div class="` + ClassAlert + `">{{.Banner}}</div>
{{- end}}
`))

// HTML renders v as the widget's markup.
func HTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
