package ena

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Fixed defaults used when the broker configuration does not override them.
const (
	DefaultCenterName  = "AToL"
	DefaultBrokerName  = "AToL"
	DefaultChecklistID = "ERC000053"
	DefaultProjectName = "AToL"

	checklistKey    = "ENA-CHECKLIST"
	projectNameKey  = "project name"
	institutionKey  = "collecting institution"
	notProvided     = "not provided"
	latitudeKey     = "geographic location (latitude)"
	longitudeKey    = "geographic location (longitude)"
	geoUnits        = "DD"
	checksumMethod  = "MD5"
)

// Payload is the free-form submission payload of one record, as decoded from
// its submission_json column.
type Payload map[string]interface{}

// ValidationError reports a payload or reference that cannot produce a
// schema-correct document. The codec fails rather than emitting a partial
// document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Codec builds submission documents with a fixed set of injected defaults.
// The zero value is not usable; construct with NewCodec.
type Codec struct {
	CenterName  string
	BrokerName  string
	ChecklistID string
	ProjectName string
}

// NewCodec returns a codec with the stock AToL defaults.
func NewCodec() Codec {
	return Codec{
		CenterName:  DefaultCenterName,
		BrokerName:  DefaultBrokerName,
		ChecklistID: DefaultChecklistID,
		ProjectName: DefaultProjectName,
	}
}

// coerce renders a payload value as text content. JSON numbers are printed
// without a trailing fractional part when integral.
func coerce(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// has reports whether the payload carries a non-null value for key.
func (p Payload) has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// text returns the string-coerced value for key, or "" when null or absent.
func (p Payload) text(key string) string {
	if !p.has(key) {
		return ""
	}
	return coerce(p[key])
}

// sortedKeys returns the payload's non-null keys in lexicographic order,
// excluding the given reserved keys. Sorting here is what makes document
// output independent of map iteration order.
func (p Payload) sortedKeys(reserved ...string) []string {
	skip := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		skip[r] = true
	}

	keys := make([]string, 0, len(p))
	for key, value := range p {
		if value == nil || skip[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// identifiers appends the IDENTIFIERS block shared by all document kinds:
// the registry accession as PRIMARY_ID when known, and the submitter alias
// as SUBMITTER_ID.
func identifiers(parent *Element, accession, alias string) {
	ids := parent.Child("IDENTIFIERS")
	if accession != "" {
		ids.TextChild("PRIMARY_ID", accession)
	}
	ids.TextChild("SUBMITTER_ID", alias)
}

// entityAttrs sets the attribute pattern shared by SAMPLE, EXPERIMENT and
// RUN elements.
func (c Codec) entityAttrs(e *Element, alias, accession string) {
	e.SetAttr("alias", alias)
	e.SetAttr("center_name", c.CenterName)
	e.SetAttr("broker_name", c.BrokerName)
	if accession != "" {
		e.SetAttr("accession", accession)
	}
}
