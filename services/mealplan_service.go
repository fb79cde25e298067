package services

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// MealTotals carries the macro sums of a list of plan items.
type MealTotals struct {
	TotalCals float64 `json:"total_cals"`
	TotalProt float64 `json:"total_prot"`
	TotalCarb float64 `json:"total_carb"`
}

// Totals sums each macro field across items. Empty input yields zeros;
// negative values are summed as-is (caller responsibility).
func Totals(items []models.PlanItem) MealTotals {
	var t MealTotals
	for _, it := range items {
		t.TotalCals += it.Cals
		t.TotalProt += it.Prot
		t.TotalCarb += it.Carb
	}
	return t
}

// SlotView is the read model of one plan slot, totals recomputed from items.
type SlotView struct {
	Key   string            `json:"key"`
	Name  string            `json:"name"`
	Time  string            `json:"time"`
	Items []models.PlanItem `json:"items"`
	MealTotals
}

// MealPlanView is a full six-slot plan snapshot in day order.
type MealPlanView struct {
	Slots []SlotView `json:"slots"`
}

// Slot returns the slot with the given key, or nil.
func (p *MealPlanView) Slot(key string) *SlotView {
	if p == nil {
		return nil
	}
	for i := range p.Slots {
		if p.Slots[i].Key == key {
			return &p.Slots[i]
		}
	}
	return nil
}

// Empty reports whether no slot carries any item.
func (p *MealPlanView) Empty() bool {
	if p == nil {
		return true
	}
	for _, s := range p.Slots {
		if len(s.Items) > 0 {
			return false
		}
	}
	return true
}

// slotDraft is the editable state of one slot inside a PlanDraft.
type slotDraft struct {
	Name  string
	Time  string
	Items []models.PlanItem
}

// PlanDraft is the meal-plan editor: a value type whose mutation operations
// return a fresh draft, leaving the receiver untouched. Save produces the
// immutable six-slot snapshot with recomputed totals.
type PlanDraft struct {
	slots map[string]slotDraft
}

// NewPlanDraft builds a draft from an existing plan view (nil starts empty).
// All six slot keys are always present.
func NewPlanDraft(existing *MealPlanView) PlanDraft {
	d := PlanDraft{slots: make(map[string]slotDraft, len(models.SlotOrder))}
	for _, key := range models.SlotOrder {
		sd := slotDraft{Name: models.SlotNames[key]}
		if s := existing.Slot(key); s != nil {
			sd.Time = s.Time
			sd.Items = append([]models.PlanItem(nil), s.Items...)
		}
		d.slots[key] = sd
	}
	return d
}

func (d PlanDraft) clone() PlanDraft {
	out := PlanDraft{slots: make(map[string]slotDraft, len(d.slots))}
	for key, sd := range d.slots {
		sd.Items = append([]models.PlanItem(nil), sd.Items...)
		out.slots[key] = sd
	}
	return out
}

// AddItem appends a zero-valued item to the slot. Totals are not recomputed
// until Save.
func (d PlanDraft) AddItem(slot string) PlanDraft {
	out := d.clone()
	sd, ok := out.slots[slot]
	if !ok {
		return out
	}
	sd.Items = append(sd.Items, models.PlanItem{})
	out.slots[slot] = sd
	return out
}

// RemoveItem drops the item at index. Out-of-range indices leave the draft
// unchanged and report an error.
func (d PlanDraft) RemoveItem(slot string, index int) (PlanDraft, error) {
	out := d.clone()
	sd, ok := out.slots[slot]
	if !ok {
		return out, fmt.Errorf("unknown meal slot %q", slot)
	}
	if index < 0 || index >= len(sd.Items) {
		return out, fmt.Errorf("item index %d out of range for %s", index, slot)
	}
	sd.Items = append(sd.Items[:index], sd.Items[index+1:]...)
	out.slots[slot] = sd
	return out, nil
}

// UpdateItem sets one field of the item at index. Numeric fields are parsed
// from the raw value; anything unparsable coerces to 0.
func (d PlanDraft) UpdateItem(slot string, index int, field, value string) (PlanDraft, error) {
	out := d.clone()
	sd, ok := out.slots[slot]
	if !ok {
		return out, fmt.Errorf("unknown meal slot %q", slot)
	}
	if index < 0 || index >= len(sd.Items) {
		return out, fmt.Errorf("item index %d out of range for %s", index, slot)
	}
	it := &sd.Items[index]
	switch field {
	case "food":
		it.Food = value
	case "weight":
		it.Weight = parseNumber(value)
	case "cals":
		it.Cals = parseNumber(value)
	case "prot":
		it.Prot = parseNumber(value)
	case "carb":
		it.Carb = parseNumber(value)
	default:
		return out, fmt.Errorf("unknown item field %q", field)
	}
	out.slots[slot] = sd
	return out, nil
}

// SetTime sets the slot's suggested time. The format is not validated.
func (d PlanDraft) SetTime(slot, t string) PlanDraft {
	out := d.clone()
	sd, ok := out.slots[slot]
	if !ok {
		return out
	}
	sd.Time = t
	out.slots[slot] = sd
	return out
}

// SetItems replaces a slot's item list wholesale (used when a full plan
// payload arrives from the editor UI).
func (d PlanDraft) SetItems(slot string, items []models.PlanItem) PlanDraft {
	out := d.clone()
	sd, ok := out.slots[slot]
	if !ok {
		return out
	}
	sd.Items = append([]models.PlanItem(nil), items...)
	out.slots[slot] = sd
	return out
}

// Save returns a new plan snapshot: all six slots present in day order, each
// slot's totals recomputed from its current items. The draft itself is left
// untouched, so earlier snapshots never change under a reader.
func (d PlanDraft) Save() MealPlanView {
	view := MealPlanView{Slots: make([]SlotView, 0, len(models.SlotOrder))}
	for _, key := range models.SlotOrder {
		sd := d.slots[key]
		items := append([]models.PlanItem(nil), sd.Items...)
		view.Slots = append(view.Slots, SlotView{
			Key:        key,
			Name:       sd.Name,
			Time:       sd.Time,
			Items:      items,
			MealTotals: Totals(items),
		})
	}
	return view
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// MealPlanService persists plan snapshots and serves read views.
type MealPlanService struct{ db *gorm.DB }

func NewMealPlanService(db *gorm.DB) *MealPlanService { return &MealPlanService{db: db} }

// EnsurePlan creates the six empty slots for a new student.
func (s *MealPlanService) EnsurePlan(userID uint) error {
	var count int64
	if err := s.db.Model(&models.MealSlot{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, key := range models.SlotOrder {
		slot := models.MealSlot{UserID: userID, Key: key, Name: models.SlotNames[key]}
		if err := s.db.Create(&slot).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetPlan loads the student's plan with totals recomputed on read.
func (s *MealPlanService) GetPlan(userID uint) (*MealPlanView, error) {
	var slots []models.MealSlot
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]models.MealSlot, len(slots))
	for _, slot := range slots {
		byKey[slot.Key] = slot
	}

	view := &MealPlanView{Slots: make([]SlotView, 0, len(models.SlotOrder))}
	for _, key := range models.SlotOrder {
		slot := byKey[key]
		name := slot.Name
		if name == "" {
			name = models.SlotNames[key]
		}
		view.Slots = append(view.Slots, SlotView{
			Key:        key,
			Name:       name,
			Time:       slot.Time,
			Items:      slot.Items,
			MealTotals: Totals(slot.Items),
		})
	}
	return view, nil
}

// ReplacePlan persists a saved snapshot by rewriting each slot's items.
// Old items are deleted and re-created, so the stored plan always mirrors
// the snapshot exactly.
func (s *MealPlanService) ReplacePlan(userID uint, saved MealPlanView) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, sv := range saved.Slots {
			var slot models.MealSlot
			err := tx.Where("user_id = ? AND key = ?", userID, sv.Key).First(&slot).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				slot = models.MealSlot{UserID: userID, Key: sv.Key, Name: models.SlotNames[sv.Key]}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			slot.Time = sv.Time
			if err := tx.Save(&slot).Error; err != nil {
				return err
			}

			if err := tx.Where("slot_id = ?", slot.ID).Delete(&models.PlanItem{}).Error; err != nil {
				return err
			}
			for pos, it := range sv.Items {
				item := models.PlanItem{
					SlotID:   slot.ID,
					Position: pos,
					Food:     it.Food,
					Weight:   it.Weight,
					Cals:     it.Cals,
					Prot:     it.Prot,
					Carb:     it.Carb,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
