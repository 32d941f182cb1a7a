package notion

import (
	"encoding/json"
	"fmt"
)

// Condition is a single property test in a query filter. Kind names the
// Notion property type key ("status", "date", "title", ...) and Op the
// operator nested under it ("equals", "before", "is_not_empty", ...).
type Condition struct {
	Property string
	Kind     string
	Op       string
	Value    interface{}
}

// Filter is a tree of conditions. Exactly one of And, Or, or Cond is set.
type Filter struct {
	And  []Filter
	Or   []Filter
	Cond *Condition
}

// MarshalJSON renders the filter in the Notion API's wire shape.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch {
	case len(f.And) > 0:
		return json.Marshal(map[string]interface{}{"and": f.And})
	case len(f.Or) > 0:
		return json.Marshal(map[string]interface{}{"or": f.Or})
	case f.Cond != nil:
		return json.Marshal(map[string]interface{}{
			"property":  f.Cond.Property,
			f.Cond.Kind: map[string]interface{}{f.Cond.Op: f.Cond.Value},
		})
	}
	return nil, fmt.Errorf("empty filter")
}

// And combines filters so a page must match all of them.
func And(filters ...Filter) Filter { return Filter{And: filters} }

// Or combines filters so a page must match at least one.
func Or(filters ...Filter) Filter { return Filter{Or: filters} }

func cond(property, kind, op string, value interface{}) Filter {
	return Filter{Cond: &Condition{Property: property, Kind: kind, Op: op, Value: value}}
}

// StatusEquals matches pages whose Status property has the given name.
func StatusEquals(name string) Filter {
	return cond("Status", "status", "equals", name)
}

// StatusNot matches pages whose Status property differs from the given name.
func StatusNot(name string) Filter {
	return cond("Status", "status", "does_not_equal", name)
}

// SelectEquals matches a select property by option name.
func SelectEquals(property, name string) Filter {
	return cond(property, "select", "equals", name)
}

// DateBefore matches a date property strictly before date (YYYY-MM-DD).
func DateBefore(property, date string) Filter {
	return cond(property, "date", "before", date)
}

// DateOnOrAfter matches a date property on or after date (YYYY-MM-DD).
func DateOnOrAfter(property, date string) Filter {
	return cond(property, "date", "on_or_after", date)
}

// DateOnOrBefore matches a date property on or before date (YYYY-MM-DD).
func DateOnOrBefore(property, date string) Filter {
	return cond(property, "date", "on_or_before", date)
}

// DateNotEmpty matches pages where the date property is set.
func DateNotEmpty(property string) Filter {
	return cond(property, "date", "is_not_empty", true)
}

// TitleContains matches a title property containing the substring.
func TitleContains(property, text string) Filter {
	return cond(property, "title", "contains", text)
}

// TitleNotEmpty matches pages with a non-empty title property.
func TitleNotEmpty(property string) Filter {
	return cond(property, "title", "is_not_empty", true)
}

// RichTextContains matches a rich_text property containing the substring.
func RichTextContains(property, text string) Filter {
	return cond(property, "rich_text", "contains", text)
}

// RelationContains matches a relation property referencing the given page id.
func RelationContains(property, id string) Filter {
	return cond(property, "relation", "contains", id)
}

// CheckboxEquals matches a checkbox property by value.
func CheckboxEquals(property string, value bool) Filter {
	return cond(property, "checkbox", "equals", value)
}

// MultiSelectContains matches a multi-select property containing the option.
func MultiSelectContains(property, name string) Filter {
	return cond(property, "multi_select", "contains", name)
}

// Sort orders query results by a property or a page timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// Ascending sorts by a property, earliest or smallest first.
func Ascending(property string) Sort {
	return Sort{Property: property, Direction: "ascending"}
}

// Descending sorts by a property, latest or largest first.
func Descending(property string) Sort {
	return Sort{Property: property, Direction: "descending"}
}
