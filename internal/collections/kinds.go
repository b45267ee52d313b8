package collections

// Kind describes one record collection: its name (also the route segment and
// storage directory), the fields required at creation, and defaults applied
// when a field is absent from the draft.
type Kind struct {
	Name     string
	Label    string
	Required []string
	Defaults map[string]any
}

// StorageKey is the fixed object key holding the collection's JSON array.
func (k Kind) StorageKey() string {
	return k.Name + "/" + k.Name + ".json"
}

var (
	// People are the employees every other record references.
	People = Kind{
		Name:     "people",
		Label:    "Person",
		Required: []string{"name", "email", "position", "department"},
	}

	// WorkItems track assigned work; status defaults to pending.
	WorkItems = Kind{
		Name:     "work-items",
		Label:    "Work item",
		Required: []string{"title", "employee_id"},
		Defaults: map[string]any{"status": "pending"},
	}

	// Alerts are dated notifications tied to a person.
	Alerts = Kind{
		Name:     "alerts",
		Label:    "Alert",
		Required: []string{"title", "employee_id", "alert_date"},
	}

	// Documents carry metadata for uploaded files; the bytes live in a
	// separate bucket (see the documents package).
	Documents = Kind{
		Name:     "documents",
		Label:    "Document",
		Required: []string{"title", "employee_id"},
	}
)

// All lists every collection served by the API, in seeding order.
var All = []Kind{People, WorkItems, Alerts, Documents}
