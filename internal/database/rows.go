package database

import (
	"time"

	"github.com/envisionar/portal/internal/domain"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Table names used by the hosted backend. They predate this service and
// keep their Portuguese names.
const (
	tableProfiles     = "usuarios"
	tableGroups       = "grupos"
	tableParticipants = "participantes"
	tableCycles       = "ciclos"
	tableEvents       = "eventos"
)

// profileRow mirrors a record in the usuarios table.
type profileRow struct {
	ID       *surrealmodels.RecordID `json:"id,omitempty"`
	Nome     string                  `json:"nome"`
	Email    string                  `json:"email"`
	Igreja   string                  `json:"igreja"`
	Programa string                  `json:"programa"`
	Tipo     string                  `json:"tipo"`
}

func (r profileRow) toDomain() domain.Profile {
	return domain.Profile{
		ID:      recordIDString(r.ID),
		Name:    r.Nome,
		Email:   r.Email,
		Church:  r.Igreja,
		Program: r.Programa,
		Role:    domain.NormalizeRole(r.Tipo),
	}
}

// groupRow mirrors a record in the grupos table, with the leader's name
// projected in by the query.
type groupRow struct {
	ID              *surrealmodels.RecordID       `json:"id,omitempty"`
	Nome            string                        `json:"nome"`
	Lider           *surrealmodels.RecordID       `json:"lider,omitempty"`
	LiderNome       *string                       `json:"lider_nome,omitempty"`
	TotalMembros    int                           `json:"total_membros"`
	ProximoEncontro *surrealmodels.CustomDateTime `json:"proximo_encontro,omitempty"`
	Status          string                        `json:"status"`
}

func (r groupRow) toDomain() domain.Group {
	g := domain.Group{
		ID:          recordIDString(r.ID),
		Name:        r.Nome,
		LeaderID:    recordIDString(r.Lider),
		MemberCount: r.TotalMembros,
		NextMeeting: optionalTime(r.ProximoEncontro),
		Status:      r.Status,
	}
	if r.LiderNome != nil {
		g.LeaderName = *r.LiderNome
	}
	return g
}

// participantRow mirrors a record in the participantes table with its
// profile and group records expanded.
type participantRow struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	UsuarioID *surrealmodels.RecordID `json:"usuario_id,omitempty"`
	GrupoID   *surrealmodels.RecordID `json:"grupo_id,omitempty"`
	Email     string                  `json:"email"`
	Telefone  string                  `json:"telefone"`
	Usuario   *profileRow             `json:"usuario,omitempty"`
	Grupo     *groupRow               `json:"grupo,omitempty"`
}

func (r participantRow) toDomain() domain.Participant {
	p := domain.Participant{
		ID:        recordIDString(r.ID),
		ProfileID: recordIDString(r.UsuarioID),
		GroupID:   recordIDString(r.GrupoID),
		Email:     r.Email,
		Phone:     r.Telefone,
	}
	if r.Usuario != nil {
		profile := r.Usuario.toDomain()
		p.Profile = &profile
	}
	if r.Grupo != nil {
		group := r.Grupo.toDomain()
		p.Group = &group
	}
	return p
}

type cycleRow struct {
	Numero      int                           `json:"numero"`
	TotalCiclos int                           `json:"total_ciclos"`
	DataInicio  *surrealmodels.CustomDateTime `json:"data_inicio,omitempty"`
}

func (r cycleRow) toDomain() domain.Cycle {
	c := domain.Cycle{Number: r.Numero, Total: r.TotalCiclos}
	if t := optionalTime(r.DataInicio); t != nil {
		c.StartDate = *t
	}
	return c
}

type eventRow struct {
	ID        *surrealmodels.RecordID       `json:"id,omitempty"`
	Titulo    string                        `json:"titulo"`
	Data      *surrealmodels.CustomDateTime `json:"data,omitempty"`
	Horario   string                        `json:"horario"`
	Local     string                        `json:"local"`
	Descricao string                        `json:"descricao"`
}

func (r eventRow) toDomain() domain.Event {
	e := domain.Event{
		ID:          recordIDString(r.ID),
		Title:       r.Titulo,
		Time:        r.Horario,
		Location:    r.Local,
		Description: r.Descricao,
	}
	if t := optionalTime(r.Data); t != nil {
		e.Date = *t
	}
	return e
}

type countRow struct {
	Total int `json:"total"`
}

func recordIDString(id *surrealmodels.RecordID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func optionalTime(dt *surrealmodels.CustomDateTime) *time.Time {
	if dt == nil || dt.Time.IsZero() {
		return nil
	}
	t := dt.Time
	return &t
}

func datetimeParam(t time.Time) surrealmodels.CustomDateTime {
	return surrealmodels.CustomDateTime{Time: t}
}
