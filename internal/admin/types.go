// Package admin provides the admin-record service: a thin façade shaping
// admin requests and responses onto the versioned entry store.
package admin

import (
	"time"

	"github.com/sparcsup/auth-service/internal/entry"
)

// EntityType is the partition tag admin records are stored under.
const EntityType = "Admin"

// Admin is one admin record, live-row bookkeeping included.
type Admin struct {
	EntryID       string       `json:"entryId"`
	Email         string       `json:"email"`
	FirstName     string       `json:"firstName,omitempty"`
	LastName      string       `json:"lastName,omitempty"`
	Position      string       `json:"position,omitempty"`
	ContactNumber string       `json:"contactNumber,omitempty"`
	IsConfirmed   bool         `json:"isConfirmed"`
	Status        entry.Status `json:"entryStatus"`
	LatestVersion int          `json:"latestVersion"`
	CreateDate    time.Time    `json:"createDate"`
	UpdateDate    time.Time    `json:"updateDate"`
	CreatedBy     string       `json:"createdBy,omitempty"`
	UpdatedBy     string       `json:"updatedBy,omitempty"`
}

// CreateInput carries the fields of a new admin record.
type CreateInput struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Position      string `json:"position,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Email         *string `json:"email,omitempty"`
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Position      *string `json:"position,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	IsConfirmed   *bool   `json:"isConfirmed,omitempty"`
}

// Business-data attribute names.
const (
	attrEmail         = "email"
	attrFirstName     = "firstName"
	attrLastName      = "lastName"
	attrPosition      = "position"
	attrContactNumber = "contactNumber"
	attrIsConfirmed   = "isConfirmed"
)

func (in CreateInput) data() map[string]any {
	data := map[string]any{
		attrEmail:       in.Email,
		attrIsConfirmed: false,
	}
	if in.FirstName != "" {
		data[attrFirstName] = in.FirstName
	}
	if in.LastName != "" {
		data[attrLastName] = in.LastName
	}
	if in.Position != "" {
		data[attrPosition] = in.Position
	}
	if in.ContactNumber != "" {
		data[attrContactNumber] = in.ContactNumber
	}
	return data
}

func (p Patch) data() map[string]any {
	data := map[string]any{}
	if p.Email != nil {
		data[attrEmail] = *p.Email
	}
	if p.FirstName != nil {
		data[attrFirstName] = *p.FirstName
	}
	if p.LastName != nil {
		data[attrLastName] = *p.LastName
	}
	if p.Position != nil {
		data[attrPosition] = *p.Position
	}
	if p.ContactNumber != nil {
		data[attrContactNumber] = *p.ContactNumber
	}
	if p.IsConfirmed != nil {
		data[attrIsConfirmed] = *p.IsConfirmed
	}
	return data
}

func fromEntry(e *entry.Entry) *Admin {
	a := &Admin{
		EntryID:       e.EntryID,
		Status:        e.Status,
		LatestVersion: e.LatestVersion,
		CreateDate:    e.CreateDate,
		UpdateDate:    e.UpdateDate,
		CreatedBy:     e.CreatedBy,
		UpdatedBy:     e.UpdatedBy,
	}
	if v, ok := e.Data[attrEmail].(string); ok {
		a.Email = v
	}
	if v, ok := e.Data[attrFirstName].(string); ok {
		a.FirstName = v
	}
	if v, ok := e.Data[attrLastName].(string); ok {
		a.LastName = v
	}
	if v, ok := e.Data[attrPosition].(string); ok {
		a.Position = v
	}
	if v, ok := e.Data[attrContactNumber].(string); ok {
		a.ContactNumber = v
	}
	if v, ok := e.Data[attrIsConfirmed].(bool); ok {
		a.IsConfirmed = v
	}
	return a
}
