// pkg/registry/schema.go
package registry

// ActivityCatalog is the on-disk description of the activities a server starts with.
type ActivityCatalog struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Find returns the activity with the given name.
func (c *ActivityCatalog) Find(name string) (*Activity, bool) {
	for i := range c.Activities {
		if c.Activities[i].Name == name {
			return &c.Activities[i], true
		}
	}
	return nil, false
}

// Upsert replaces the activity with the same name or appends it.
func (c *ActivityCatalog) Upsert(activity Activity) (created bool) {
	if existing, ok := c.Find(activity.Name); ok {
		*existing = activity
		return false
	}
	c.Activities = append(c.Activities, activity)
	return true
}
