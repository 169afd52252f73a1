package schema

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// NamingStrategy derives table names from REST resource names.
type NamingStrategy struct {
	TablePrefix   string
	SingularTable bool
}

// TableName convert a resource name to a table name
func (ns NamingStrategy) TableName(str string) string {
	if ns.SingularTable {
		return ns.TablePrefix + toDBName(str)
	}
	return ns.TablePrefix + inflection.Plural(toDBName(str))
}

// toDBName converts CamelCase resource names to snake_case.
func toDBName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(name[i-1])) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
