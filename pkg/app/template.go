package app

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate runs payload through the go template engine with the sprig
// function map.
func ExecuteTemplate(payload string, vars map[string]any) (string, error) {
	tpl, err := template.New("transcode").Funcs(sprig.HermeticTxtFuncMap()).Parse(payload)
	if err != nil {
		return "", fmt.Errorf("failed to parse go template: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute go template: %w", err)
	}
	return buf.String(), nil
}
