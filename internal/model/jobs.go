package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Scripts shipped in assets/fabrik/scripts.
const (
	ScriptFullAutomation  = "full_automation.jsx"
	ScriptCaissonSimple   = "caisson_generation.jsx"
	ScriptCaissonMulti    = "caisson_multi_generation.jsx"
	ScriptCaissonDouble   = "caisson_double_generation.jsx"
	ScriptLettresBoitiers = "lettres_boitiers.jsx"
)

// KnownScripts lists the shipped scripts in catalog order.
var KnownScripts = []string{
	ScriptFullAutomation,
	ScriptCaissonSimple,
	ScriptCaissonMulti,
	ScriptCaissonDouble,
	ScriptLettresBoitiers,
}

// Plate and depth limits used by the fabrication forms (mm).
const (
	PlaqueMaxWidth          = 3050.0
	PlaqueMaxHeight         = 1500.0
	DefaultDepthLumineux    = 70.0
	DefaultDepthNonLumineux = 45.0
)

// ScriptRequest is one request to run a script in the external editor.
// RawParams is opaque text spliced into the script preamble; it is not
// validated as JSON.
type ScriptRequest struct {
	ID         string // optional; names the temporary script file
	EditorPath string
	ScriptName string
	RawParams  string
}

// Thickness describes per-side return depths of a box.
type Thickness struct {
	Haut    float64 `json:"haut"`
	Bas     float64 `json:"bas"`
	Gauche  float64 `json:"gauche"`
	Droite  float64 `json:"droite"`
	IsMulti bool    `json:"isMulti"`
}

// CaissonSimpleParams drives caisson_generation.jsx.
type CaissonSimpleParams struct {
	Largeur       float64    `json:"largeur"`
	Hauteur       float64    `json:"hauteur"`
	Profondeur    float64    `json:"profondeur"`
	Thickness     *Thickness `json:"thickness,omitempty"`
	DrillingHoles bool       `json:"drillingHoles"`
}

// Validate checks the box fits on a plate.
func (p CaissonSimpleParams) Validate() error {
	if p.Largeur <= 0 || p.Hauteur <= 0 {
		return fmt.Errorf("largeur and hauteur must be > 0")
	}
	if p.Profondeur < 0 {
		return fmt.Errorf("profondeur must not be negative")
	}
	return checkPlaque(p.Largeur, p.Hauteur)
}

// PartType is the position of a section in a multi-part box.
type PartType string

const (
	PartLeft   PartType = "left"
	PartCenter PartType = "center"
	PartRight  PartType = "right"
)

// PartData is one section of a multi-part box.
type PartData struct {
	Type             PartType   `json:"type"`
	Largeur          float64    `json:"largeur"`
	Hauteur          float64    `json:"hauteur"`
	Profondeur       float64    `json:"profondeur"`
	IsMultiThickness bool       `json:"isMultiThickness"`
	Thickness        *Thickness `json:"thickness,omitempty"`
	DrillingHoles    bool       `json:"drillingHoles"`
}

// CaissonMultiParams drives caisson_multi_generation.jsx.
type CaissonMultiParams struct {
	Parts         []PartData `json:"parts"`
	DrillingHoles bool       `json:"drillingHoles"`
}

// Validate checks every section.
func (p CaissonMultiParams) Validate() error {
	if len(p.Parts) == 0 {
		return fmt.Errorf("at least one part is required")
	}
	for i, part := range p.Parts {
		if part.Largeur <= 0 || part.Hauteur <= 0 {
			return fmt.Errorf("part %d: largeur and hauteur must be > 0", i+1)
		}
		if err := checkPlaque(part.Largeur, part.Hauteur); err != nil {
			return fmt.Errorf("part %d: %w", i+1, err)
		}
	}
	return nil
}

// CaissonDoubleParams drives caisson_double_generation.jsx.
type CaissonDoubleParams struct {
	Largeur       float64 `json:"largeur"`
	Hauteur       float64 `json:"hauteur"`
	Epaisseur     float64 `json:"epaisseur"`
	DrillingHoles bool    `json:"drillingHoles"`
	// nil places the brackets at the ends
	EntraxePotences *float64 `json:"entraxePotences"`
}

// Validate checks the box fits on a plate and the bracket spacing fits the box.
func (p CaissonDoubleParams) Validate() error {
	if p.Largeur <= 0 || p.Hauteur <= 0 || p.Epaisseur <= 0 {
		return fmt.Errorf("largeur, hauteur and epaisseur must be > 0")
	}
	if p.EntraxePotences != nil && (*p.EntraxePotences <= 0 || *p.EntraxePotences > p.Largeur) {
		return fmt.Errorf("entraxe %.0f mm must be within the box width", *p.EntraxePotences)
	}
	return checkPlaque(p.Largeur, p.Hauteur)
}

// TrancheFinition is the finish of letter returns.
type TrancheFinition string

const (
	FinitionNone     TrancheFinition = ""
	FinitionMat      TrancheFinition = "MAT"
	FinitionBrillant TrancheFinition = "BRILLANT"
)

// LettresBoitiersParams drives lettres_boitiers.jsx.
type LettresBoitiersParams struct {
	DestinationPath  string          `json:"destinationPath"`
	DossierName      string          `json:"dossierName"`
	BatNumber        string          `json:"batNumber"`
	TrancheEpaisseur string          `json:"trancheEpaisseur,omitempty"` // e.g. "100" for 100MM
	TrancheRal       string          `json:"trancheRal,omitempty"`       // e.g. "8019"
	TrancheFinition  TrancheFinition `json:"trancheFinition,omitempty"`  // only with a RAL
}

// Validate checks the required fields.
func (p LettresBoitiersParams) Validate() error {
	if p.DestinationPath == "" || p.DossierName == "" || p.BatNumber == "" {
		return fmt.Errorf("destination, dossier and BAT number are required")
	}
	if p.TrancheFinition != FinitionNone && p.TrancheRal == "" {
		return fmt.Errorf("a finish requires a RAL colour")
	}
	return nil
}

// Summary describes the box in one line.
func (p CaissonSimpleParams) Summary() string {
	s := fmt.Sprintf("%.0f x %.0f x %.0f mm", p.Largeur, p.Hauteur, p.Profondeur)
	if p.DrillingHoles {
		s += ", drilled"
	}
	return s
}

// Summary describes the sections in one line.
func (p CaissonMultiParams) Summary() string {
	var w float64
	for _, part := range p.Parts {
		w += part.Largeur
	}
	return fmt.Sprintf("%d parts, %.0f mm total width", len(p.Parts), w)
}

// Summary describes the box in one line.
func (p CaissonDoubleParams) Summary() string {
	s := fmt.Sprintf("%.0f x %.0f mm, %.0f mm thick", p.Largeur, p.Hauteur, p.Epaisseur)
	if p.EntraxePotences != nil {
		s += fmt.Sprintf(", brackets %.0f mm apart", *p.EntraxePotences)
	}
	return s
}

// Summary names the dossier and proof.
func (p LettresBoitiersParams) Summary() string {
	s := fmt.Sprintf("%s BAT %s", p.DossierName, p.BatNumber)
	if p.TrancheRal != "" {
		s += " RAL " + p.TrancheRal
		if p.TrancheFinition != FinitionNone {
			s += " " + string(p.TrancheFinition)
		}
	}
	return s
}

// DefaultDepth returns the default box depth for lit or unlit signs.
func DefaultDepth(lumineux bool) float64 {
	if lumineux {
		return DefaultDepthLumineux
	}
	return DefaultDepthNonLumineux
}

func checkPlaque(w, h float64) error {
	fits := (w <= PlaqueMaxWidth && h <= PlaqueMaxHeight) ||
		(h <= PlaqueMaxWidth && w <= PlaqueMaxHeight)
	if !fits {
		return fmt.Errorf("%.0f x %.0f mm exceeds plate %.0f x %.0f mm", w, h, PlaqueMaxWidth, PlaqueMaxHeight)
	}
	return nil
}

// Validator is implemented by typed script parameters.
type Validator interface {
	Validate() error
}

// Job is a typed, ready-to-run script invocation.
type Job struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Script string `json:"script"`
	Params any    `json:"params"`
}

// NewJob creates a Job with a unique ID.
func NewJob(label, script string, params any) Job {
	return Job{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Script: script,
		Params: params,
	}
}

// Summary describes the job parameters in one line, or returns "" when
// they carry no description.
func (j Job) Summary() string {
	if s, ok := j.Params.(interface{ Summary() string }); ok {
		return s.Summary()
	}
	return ""
}

// RawParams serializes the job parameters to the text handed to the
// pipeline. A nil Params yields "{}".
func (j Job) RawParams() (string, error) {
	if j.Params == nil {
		return "{}", nil
	}
	if v, ok := j.Params.(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("invalid parameters for %s: %w", j.Script, err)
		}
	}
	data, err := json.Marshal(j.Params)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters for %s: %w", j.Script, err)
	}
	return string(data), nil
}

// Request builds the ScriptRequest for this job.
func (j Job) Request(editorPath string) (ScriptRequest, error) {
	raw, err := j.RawParams()
	if err != nil {
		return ScriptRequest{}, err
	}
	return ScriptRequest{
		ID:         j.ID,
		EditorPath: editorPath,
		ScriptName: j.Script,
		RawParams:  raw,
	}, nil
}
