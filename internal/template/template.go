package template

import (
	"html/template"
	"io"
)

var Login *template.Template
var Unlock *template.Template
var Dashboard *template.Template
var AssetList *template.Template
var AssetForm *template.Template
var AlertList *template.Template
var History *template.Template
var Settings *template.Template
var Pro *template.Template
var PaymentSuccess *template.Template
var PaymentFailure *template.Template

func parse(names ...string) *template.Template {
	paths := make([]string, 0, len(names)+1)
	paths = append(paths, "template/base.tmpl")

	for _, name := range names {
		paths = append(paths, "template/"+name)
	}

	return template.Must(template.ParseFiles(paths...))
}

func Init() {
	Login = parse("login.tmpl")
	Unlock = parse("unlock.tmpl")
	Dashboard = parse("dashboard.tmpl")
	AssetList = parse("asset-list.tmpl")
	AssetForm = parse("asset-form.tmpl")
	AlertList = parse("alert-form.tmpl", "alert-list.tmpl")
	History = parse("history.tmpl")
	Settings = parse("settings.tmpl")
	Pro = parse("pro.tmpl")
	PaymentSuccess = parse("payment-success.tmpl")
	PaymentFailure = parse("payment-failure.tmpl")
}

func Render(tmpl *template.Template, writer io.Writer, data interface{}) {
	tmpl.ExecuteTemplate(writer, "base", data)
}
