package businessunit

import "time"

type BusinessUnit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
