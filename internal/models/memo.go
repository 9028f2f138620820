package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Memo represents a generated investment memo for a company
type Memo struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	CompanyID    uuid.UUID         `json:"company_id" db:"company_id"`
	Content      StructuredContent `json:"content" db:"content"`
	SectionTools SectionTools      `json:"section_tools" db:"section_tools"`
	QuickTake    *VCQuickTake      `json:"quick_take,omitempty" db:"quick_take"`
	Status       string            `json:"status" db:"status"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// MemoStatus represents memo generation status values
type MemoStatus string

const (
	MemoPending   MemoStatus = "pending"
	MemoGenerated MemoStatus = "generated"
	MemoFailed    MemoStatus = "failed"
)

// StructuredContent is the section-structured body of a memo
type StructuredContent struct {
	Sections []MemoSection `json:"sections"`
}

// MemoSection is one titled section of a memo with its narrative and
// optional VC-style reflection
type MemoSection struct {
	Title        string        `json:"title"`
	Narrative    string        `json:"narrative"`
	VCReflection *VCReflection `json:"vcReflection,omitempty"`
}

// VCReflection carries the analyst-voice commentary attached to a section
type VCReflection struct {
	Analysis  string   `json:"analysis"`
	Questions []string `json:"questions,omitempty"`
}

// VCQuickTake is the short verdict summary shown before full memo access
type VCQuickTake struct {
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	ReadinessLevel string   `json:"readinessLevel,omitempty"`
}

// SectionTools maps a section title to its structured AI tool output
type SectionTools map[string]SectionTool

// SectionTool is the per-section structured output stored alongside a memo
type SectionTool struct {
	SectionScore    *float64 `json:"sectionScore,omitempty"`
	Benchmark       string   `json:"benchmark,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
	WhatThisTellsVC string   `json:"vcInvestmentLogic,omitempty"`
	Assumptions     []string `json:"assumptions,omitempty"`
}

// Value implements driver.Valuer for StructuredContent
func (sc StructuredContent) Value() (driver.Value, error) {
	return json.Marshal(sc)
}

// Scan implements sql.Scanner for StructuredContent
func (sc *StructuredContent) Scan(value interface{}) error {
	if value == nil {
		*sc = StructuredContent{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StructuredContent", value)
	}

	return json.Unmarshal(bytes, sc)
}

// Value implements driver.Valuer for SectionTools
func (st SectionTools) Value() (driver.Value, error) {
	if st == nil {
		return json.Marshal(SectionTools{})
	}
	return json.Marshal(st)
}

// Scan implements sql.Scanner for SectionTools
func (st *SectionTools) Scan(value interface{}) error {
	if value == nil {
		*st = SectionTools{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into SectionTools", value)
	}

	return json.Unmarshal(bytes, st)
}

// QuickTakeColumn wraps *VCQuickTake for nullable JSON storage
type QuickTakeColumn struct {
	QuickTake *VCQuickTake
}

// Value implements driver.Valuer for QuickTakeColumn
func (q QuickTakeColumn) Value() (driver.Value, error) {
	if q.QuickTake == nil {
		return nil, nil
	}
	return json.Marshal(q.QuickTake)
}

// Scan implements sql.Scanner for QuickTakeColumn
func (q *QuickTakeColumn) Scan(value interface{}) error {
	if value == nil {
		q.QuickTake = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into QuickTakeColumn", value)
	}

	q.QuickTake = &VCQuickTake{}
	return json.Unmarshal(bytes, q.QuickTake)
}
