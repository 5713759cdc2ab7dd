package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

const (
	lightingLumineux    = "Lumineux"
	lightingNonLumineux = "Non lumineux"
)

// showParamsForm opens the typed form for script and writes the resulting
// parameters into the run panel.
func (a *App) showParamsForm(script string) {
	switch script {
	case model.ScriptCaissonSimple:
		a.showCaissonSimpleForm()
	case model.ScriptCaissonMulti:
		a.showCaissonMultiForm()
	case model.ScriptCaissonDouble:
		a.showCaissonDoubleForm()
	case model.ScriptLettresBoitiers:
		a.showLettresBoitiersForm()
	case model.ScriptFullAutomation:
		a.setParams(script, "{}", "Full automation")
	case "":
		dialog.ShowInformation("No script", "Select a script first.", a.window)
	default:
		dialog.ShowInformation("No form",
			fmt.Sprintf("%s has no parameter form. Edit the JSON directly.", script), a.window)
	}
}

// applyJob validates the job and loads its parameters, or reports the error.
func (a *App) applyJob(job model.Job) bool {
	raw, err := job.RawParams()
	if err != nil {
		dialog.ShowError(err, a.window)
		return false
	}
	a.setParams(job.Script, raw, job.Label)
	return true
}

func mmEntry(value float64) *widget.Entry {
	e := widget.NewEntry()
	if value > 0 {
		e.SetText(formatMM(value))
	}
	return e
}

func lightingSelect(depth *widget.Entry) *widget.Select {
	sel := widget.NewSelect([]string{lightingLumineux, lightingNonLumineux}, func(s string) {
		depth.SetText(formatMM(model.DefaultDepth(s == lightingLumineux)))
	})
	sel.SetSelected(lightingLumineux)
	return sel
}

// showFormDialog shows items in a modal form. onSubmit returns false to keep
// the dialog open.
func (a *App) showFormDialog(title string, items []*widget.FormItem, onSubmit func() bool) {
	form := widget.NewForm(items...)
	var d dialog.Dialog
	form.SubmitText = "Apply"
	form.CancelText = "Cancel"
	form.OnCancel = func() { d.Hide() }
	form.OnSubmit = func() {
		if onSubmit() {
			d.Hide()
		}
	}
	d = dialog.NewCustomWithoutButtons(title, form, a.window)
	d.Resize(fyne.NewSize(480, 0))
	d.Show()
}

func (a *App) showCaissonSimpleForm() {
	largeur := mmEntry(0)
	hauteur := mmEntry(0)
	profondeur := mmEntry(model.DefaultDepthLumineux)
	lighting := lightingSelect(profondeur)
	multi := widget.NewCheck("Different depth per side", nil)
	haut, bas, gauche, droite := mmEntry(0), mmEntry(0), mmEntry(0), mmEntry(0)
	drilling := widget.NewCheck("Drilling holes", nil)
	drilling.SetChecked(true)

	a.showFormDialog("Caisson simple", []*widget.FormItem{
		widget.NewFormItem("Lighting", lighting),
		widget.NewFormItem("Largeur (mm)", largeur),
		widget.NewFormItem("Hauteur (mm)", hauteur),
		widget.NewFormItem("Profondeur (mm)", profondeur),
		widget.NewFormItem("", multi),
		widget.NewFormItem("Haut (mm)", haut),
		widget.NewFormItem("Bas (mm)", bas),
		widget.NewFormItem("Gauche (mm)", gauche),
		widget.NewFormItem("Droite (mm)", droite),
		widget.NewFormItem("", drilling),
	}, func() bool {
		p := model.CaissonSimpleParams{DrillingHoles: drilling.Checked}
		var err error
		if p.Largeur, err = parseMM(largeur.Text); err != nil {
			return a.formError("largeur", err)
		}
		if p.Hauteur, err = parseMM(hauteur.Text); err != nil {
			return a.formError("hauteur", err)
		}
		if p.Profondeur, err = parseMM(profondeur.Text); err != nil {
			return a.formError("profondeur", err)
		}
		if multi.Checked {
			t := model.Thickness{IsMulti: true}
			for _, f := range []struct {
				name  string
				entry *widget.Entry
				dst   *float64
			}{{"haut", haut, &t.Haut}, {"bas", bas, &t.Bas}, {"gauche", gauche, &t.Gauche}, {"droite", droite, &t.Droite}} {
				v, err := parseOptionalMM(f.entry.Text)
				if err != nil {
					return a.formError(f.name, err)
				}
				if v != nil {
					*f.dst = *v
				}
			}
			p.Thickness = &t
		}
		label := fmt.Sprintf("Caisson %s x %s", formatMM(p.Largeur), formatMM(p.Hauteur))
		return a.applyJob(model.NewJob(label, model.ScriptCaissonSimple, p))
	})
}

func (a *App) showCaissonMultiForm() {
	widths := widget.NewEntry()
	widths.SetPlaceHolder("800, 1200, 800")
	hauteur := mmEntry(0)
	profondeur := mmEntry(model.DefaultDepthLumineux)
	lighting := lightingSelect(profondeur)
	multi := widget.NewCheck("Open the inner sides", nil)
	drilling := widget.NewCheck("Drilling holes", nil)
	drilling.SetChecked(true)

	a.showFormDialog("Caisson multi", []*widget.FormItem{
		widget.NewFormItem("Lighting", lighting),
		widget.NewFormItem("Largeurs (mm)", widths),
		widget.NewFormItem("Hauteur (mm)", hauteur),
		widget.NewFormItem("Profondeur (mm)", profondeur),
		widget.NewFormItem("", multi),
		widget.NewFormItem("", drilling),
	}, func() bool {
		ws, err := parseWidths(widths.Text)
		if err != nil {
			return a.formError("largeurs", err)
		}
		h, err := parseMM(hauteur.Text)
		if err != nil {
			return a.formError("hauteur", err)
		}
		d, err := parseMM(profondeur.Text)
		if err != nil {
			return a.formError("profondeur", err)
		}
		p := model.CaissonMultiParams{
			Parts:         buildMultiParts(ws, h, d, multi.Checked, drilling.Checked),
			DrillingHoles: drilling.Checked,
		}
		label := fmt.Sprintf("Caisson multi %d parts", len(p.Parts))
		return a.applyJob(model.NewJob(label, model.ScriptCaissonMulti, p))
	})
}

func (a *App) showCaissonDoubleForm() {
	largeur := mmEntry(0)
	hauteur := mmEntry(0)
	epaisseur := mmEntry(model.DefaultDepthLumineux)
	entraxe := widget.NewEntry()
	entraxe.SetPlaceHolder("blank places the brackets at the ends")
	drilling := widget.NewCheck("Drilling holes", nil)
	drilling.SetChecked(true)

	a.showFormDialog("Caisson double face", []*widget.FormItem{
		widget.NewFormItem("Largeur (mm)", largeur),
		widget.NewFormItem("Hauteur (mm)", hauteur),
		widget.NewFormItem("Epaisseur (mm)", epaisseur),
		widget.NewFormItem("Entraxe potences (mm)", entraxe),
		widget.NewFormItem("", drilling),
	}, func() bool {
		p := model.CaissonDoubleParams{DrillingHoles: drilling.Checked}
		var err error
		if p.Largeur, err = parseMM(largeur.Text); err != nil {
			return a.formError("largeur", err)
		}
		if p.Hauteur, err = parseMM(hauteur.Text); err != nil {
			return a.formError("hauteur", err)
		}
		if p.Epaisseur, err = parseMM(epaisseur.Text); err != nil {
			return a.formError("epaisseur", err)
		}
		if p.EntraxePotences, err = parseOptionalMM(entraxe.Text); err != nil {
			return a.formError("entraxe", err)
		}
		label := fmt.Sprintf("Caisson double %s x %s", formatMM(p.Largeur), formatMM(p.Hauteur))
		return a.applyJob(model.NewJob(label, model.ScriptCaissonDouble, p))
	})
}

func (a *App) showLettresBoitiersForm() {
	destination := widget.NewEntry()
	browse := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			destination.SetText(uri.Path())
		}, a.window)
	})
	dossier := widget.NewEntry()
	bat := widget.NewEntry()
	epaisseur := widget.NewEntry()
	epaisseur.SetPlaceHolder("100")
	ral := widget.NewEntry()
	ral.SetPlaceHolder("8019")
	finition := widget.NewSelect([]string{"Aucune", string(model.FinitionMat), string(model.FinitionBrillant)}, nil)
	finition.SetSelected("Aucune")

	a.showFormDialog("Lettres boitiers", []*widget.FormItem{
		widget.NewFormItem("Destination", destination),
		widget.NewFormItem("", browse),
		widget.NewFormItem("Dossier", dossier),
		widget.NewFormItem("BAT", bat),
		widget.NewFormItem("Tranche (mm)", epaisseur),
		widget.NewFormItem("RAL", ral),
		widget.NewFormItem("Finition", finition),
	}, func() bool {
		p := model.LettresBoitiersParams{
			DestinationPath:  strings.TrimSpace(destination.Text),
			DossierName:      strings.TrimSpace(dossier.Text),
			BatNumber:        strings.TrimSpace(bat.Text),
			TrancheEpaisseur: strings.TrimSpace(epaisseur.Text),
			TrancheRal:       strings.TrimSpace(ral.Text),
			TrancheFinition:  parseFinition(finition.Selected),
		}
		label := fmt.Sprintf("Lettres %s", p.DossierName)
		return a.applyJob(model.NewJob(label, model.ScriptLettresBoitiers, p))
	})
}

func (a *App) formError(field string, err error) bool {
	dialog.ShowError(fmt.Errorf("%s: %w", field, err), a.window)
	return false
}

// parseMM reads a positive length in millimetres. A decimal comma is accepted.
func parseMM(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be > 0")
	}
	return v, nil
}

// parseOptionalMM is parseMM that maps a blank field to nil.
func parseOptionalMM(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseMM(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseWidths reads a list of section widths separated by ';', spaces or
// commas. Commas between digits with no space are decimal commas.
func parseWidths(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ' ' || r == '\t' })
	var parts []string
	for _, f := range fields {
		if strings.Count(f, ",") > 1 || strings.HasSuffix(f, ",") || strings.HasPrefix(f, ",") {
			for _, p := range strings.Split(f, ",") {
				if p != "" {
					parts = append(parts, p)
				}
			}
			continue
		}
		parts = append(parts, f)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("enter at least two widths")
	}
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := parseMM(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// buildMultiParts lays out sections left to right: the first is the left
// part, the last the right part and any others are center parts. With
// openInner the inner sides carry no return.
func buildMultiParts(widths []float64, hauteur, profondeur float64, openInner, drilling bool) []model.PartData {
	parts := make([]model.PartData, len(widths))
	for i, w := range widths {
		typ := model.PartCenter
		switch i {
		case 0:
			typ = model.PartLeft
		case len(widths) - 1:
			typ = model.PartRight
		}
		part := model.PartData{
			Type:          typ,
			Largeur:       w,
			Hauteur:       hauteur,
			Profondeur:    profondeur,
			DrillingHoles: drilling,
		}
		if openInner {
			t := model.Thickness{Haut: profondeur, Bas: profondeur, IsMulti: true}
			if typ == model.PartLeft {
				t.Gauche = profondeur
			}
			if typ == model.PartRight {
				t.Droite = profondeur
			}
			part.IsMultiThickness = true
			part.Thickness = &t
		}
		parts[i] = part
	}
	return parts
}

func parseFinition(s string) model.TrancheFinition {
	switch model.TrancheFinition(s) {
	case model.FinitionMat, model.FinitionBrillant:
		return model.TrancheFinition(s)
	}
	return model.FinitionNone
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
