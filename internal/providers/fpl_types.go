package providers

import (
	"fmt"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// FPL API response structures

// BootstrapResponse is the subset of bootstrap-static the advisor reads
type BootstrapResponse struct {
	Events       []fplEvent       `json:"events"`
	Teams        []fplTeam        `json:"teams"`
	Elements     []fplElement     `json:"elements"`
	ElementTypes []fplElementType `json:"element_types"`
}

type fplEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	IsNext    bool `json:"is_next"`
	Finished  bool `json:"finished"`
}

type fplTeam struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// fplElement is one player. form and points_per_game arrive as decimal
// strings; a nil pointer means the field was absent from the payload.
type fplElement struct {
	ID            int     `json:"id"`
	FirstName     string  `json:"first_name"`
	SecondName    string  `json:"second_name"`
	WebName       string  `json:"web_name"`
	Team          int     `json:"team"`
	ElementType   int     `json:"element_type"`
	NowCost       int     `json:"now_cost"`
	Form          *string `json:"form"`
	PointsPerGame *string `json:"points_per_game"`
	Minutes       int     `json:"minutes"`
	News          string  `json:"news"`
	Status        string  `json:"status"`
	Photo         string  `json:"photo"`
}

type fplElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

// PicksResponse is entry/{id}/event/{gw}/picks
type PicksResponse struct {
	Picks        []fplPick       `json:"picks"`
	EntryHistory fplEntryHistory `json:"entry_history"`
	ActiveChip   *string         `json:"active_chip"`
}

type fplPick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type fplEntryHistory struct {
	Event int  `json:"event"`
	Bank  *int `json:"bank"`
}

// EntryResponse is entry/{id}
type EntryResponse struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	PlayerFirstName  string `json:"player_first_name"`
	PlayerLastName   string `json:"player_last_name"`
	CurrentEvent     *int   `json:"current_event"`
	LastDeadlineBank *int   `json:"last_deadline_bank"`
}

type historyResponse struct {
	Chips []struct {
		Name  string `json:"name"`
		Event int    `json:"event"`
	} `json:"chips"`
}

// TeamNames maps team id to display name
func (b *BootstrapResponse) TeamNames() map[int]string {
	teams := make(map[int]string, len(b.Teams))
	for _, t := range b.Teams {
		teams[t.ID] = t.Name
	}
	return teams
}

// CurrentGameweek returns the event flagged current, else the next one
func (b *BootstrapResponse) CurrentGameweek() (int, error) {
	for _, e := range b.Events {
		if e.IsCurrent {
			return e.ID, nil
		}
	}
	for _, e := range b.Events {
		if e.IsNext {
			return e.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no current or next gameweek in bootstrap events", ErrNotFound)
}

func (b *BootstrapResponse) elementsByID() map[int]fplElement {
	byID := make(map[int]fplElement, len(b.Elements))
	for _, e := range b.Elements {
		byID[e.ID] = e
	}
	return byID
}

// positionOf prefers the bootstrap element_types table and falls back to the
// fixed 1-4 mapping.
func (b *BootstrapResponse) positionOf(elementType int) models.Position {
	for _, et := range b.ElementTypes {
		if et.ID == elementType {
			if pos := models.Position(et.SingularNameShort); pos.IsValid() {
				return pos
			}
			break
		}
	}
	return models.PositionFromElementType(elementType)
}
