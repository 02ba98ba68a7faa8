package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pivotquad/ecs"
)

// EntityRow is one line of the inspector's entity table.
type EntityRow struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

// EntityRows lists every live entity, by archetype id then slot.
func EntityRows(storage *ecs.Storage) []EntityRow {
	var rows []EntityRow
	for _, archetype := range storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			rows = append(rows, EntityRow{ID: id, ArchetypeID: archetype.ID(), Components: names})
		}
	}
	return rows
}

// Selected returns the inspected entity. A selection that no longer exists,
// because the entity was deleted or moved to another archetype, falls back
// to the first row holding Focus, or the first row.
func (ci *ComponentInspector) Selected(rows []EntityRow) (ecs.EntityId, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	for _, row := range rows {
		if row.ID == ci.selected {
			return ci.selected, true
		}
	}

	ci.selected = rows[0].ID
	if ci.Focus != nil {
		for _, row := range rows {
			if slices.Contains(row.Components, ci.Focus.String()) {
				ci.selected = row.ID
				break
			}
		}
	}
	return ci.selected, true
}

// Render draws the inspector. Edits are written straight into storage.
func (ci *ComponentInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 480), imgui.CondOnce)
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := EntityRows(storage)
	selected, ok := ci.Selected(rows)
	if !ok {
		imgui.Text("No entities")
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Entities", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), row.ID == selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ci.selected = row.ID
				selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entity %d  archetype 0x%X", selected, selected.ArchetypeId()))

	archetype := storage.GetArchetypeById(selected.ArchetypeId())
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			editValue(compType.String(), compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// editValue draws an editor for v, which must be addressable. path keeps
// widget ids unique across nested fields.
func editValue(path, label string, v reflect.Value) {
	id := "##" + path

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		fieldLabel(label)
		if imgui.InputInt(id, &n) && !v.OverflowInt(int64(n)) {
			v.SetInt(int64(n))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		fieldLabel(label)
		if imgui.InputInt(id, &n) && n >= 0 && !v.OverflowUint(uint64(n)) {
			v.SetUint(uint64(n))
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		fieldLabel(label)
		if imgui.InputFloat(id, &f) {
			v.SetFloat(float64(f))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(label+id, &b) {
			v.SetBool(b)
		}

	case reflect.String:
		s := v.String()
		fieldLabel(label)
		if imgui.InputTextWithHint(id, "", &s, imgui.InputTextFlagsNone, nil) {
			v.SetString(s)
		}

	case reflect.Struct:
		fields := globalReflectionCache.GetFields(v.Type())
		if len(fields) == 0 {
			imgui.Text(label)
			return
		}
		if imgui.TreeNodeStr(label + id) {
			for _, f := range fields {
				editValue(path+"."+f.Name, f.Name, v.Field(f.Index))
			}
			imgui.TreePop()
		}

	case reflect.Array, reflect.Slice:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]%s", label, v.Len(), id)) {
			for i := range v.Len() {
				editValue(fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("[%d]", i), v.Index(i))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
	}
}

func fieldLabel(label string) {
	imgui.Text(label + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
