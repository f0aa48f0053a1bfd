package dom

import (
	"github.com/psilva261/udom/patch"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"strings"
)

// Styles returns the declarations of l's style attribute.
func Styles(l patch.Live) map[string]string {
	el := l.(*node)
	if !hasAttr(*el.n, "style") {
		return map[string]string{}
	}
	return parseStyle(attr(*el.n, "style"))
}

// StyleValue returns one style property of l. prop may be camelCase or
// kebab-case.
func StyleValue(l patch.Live, prop string) string {
	return Styles(l)[kebab(prop)]
}

func parseStyle(st string) (m map[string]string) {
	m = make(map[string]string)
	p := css.NewParser(parse.NewInputString(st), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		} else if gt == css.AtRuleGrammar || gt == css.BeginAtRuleGrammar || gt == css.BeginRulesetGrammar || gt == css.DeclarationGrammar {
			k := string(data)
			v := ""
			for _, val := range p.Values() {
				v += string(val.Data)
			}
			m[k] = v
		}
	}
	return
}

func kebab(k string) (res string) {
	if strings.Contains(k, "-") {
		return k
	}
	for i := len(k) - 1; i >= 0; i-- {
		s := k[i : i+1]
		if s == strings.ToUpper(s) && s != strings.ToLower(s) {
			k = k[:i] + "-" + strings.ToLower(s) + k[i+1:]
		}
	}
	return k
}
