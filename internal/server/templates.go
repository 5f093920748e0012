package server

import (
	"html/template"
	"time"

	"studio-site/internal/models"
	"studio-site/web"
)

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len([]rune(prefix)) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}

func maskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	masked := make([]rune, n)
	for i := range runes {
		if i >= n-2 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}

var projectStatusLabels = map[models.ProjectStatus]string{
	models.StatusCompleted: "Завершён",
	models.StatusOngoing:   "В работе",
	models.StatusPlanned:   "Запланирован",
}

var inquiryStatusLabels = map[models.InquiryStatus]string{
	models.InquiryNew:        "Новая",
	models.InquiryInProgress: "В работе",
	models.InquiryResolved:   "Закрыта",
}

func statusLabel(s models.ProjectStatus) string {
	if l, ok := projectStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func inquiryLabel(s models.InquiryStatus) string {
	if l, ok := inquiryStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// formatDate принимает time.Time и *time.Time.
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("02.01.2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return formatDate(*t)
	}
	return ""
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"maskEmail":    maskEmail,
		"maskPhone":    maskPhone,
		"label":        models.Category.Label,
		"statusLabel":  statusLabel,
		"inquiryLabel": inquiryLabel,
		"date":         formatDate,
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap()).ParseFS(web.Templates, "templates/*.html")
}
