package domain

import "time"

type Amenity struct {
	BaseModel
	Name string
}

type AmenityInput struct {
	Name string
}

type AmenityPatch struct {
	Name *string
}

func NewAmenity(in AmenityInput) *Amenity {
	return &Amenity{
		BaseModel: newBaseModel(),
		Name:      in.Name,
	}
}

func (a *Amenity) Validate() error {
	return validateName("amenity name", a.Name, maxNameLength)
}

func (a *Amenity) Update(p AmenityPatch) error {
	staged := *a
	changed := false
	if p.Name != nil && *p.Name != staged.Name {
		staged.Name = *p.Name
		changed = true
	}
	if err := staged.Validate(); err != nil {
		return err
	}
	if changed {
		staged.Touch(time.Now())
	}
	*a = staged
	return nil
}

func (a *Amenity) Clone() *Amenity {
	cp := *a
	return &cp
}

func (a *Amenity) Attribute(name string) (any, bool) {
	if name == "name" {
		return a.Name, true
	}
	return a.baseAttribute(name)
}

func (a *Amenity) SetAttribute(name string, value any) bool {
	if name != "name" {
		return false
	}
	s, ok := asString(value)
	if ok {
		a.Name = s
	}
	return ok
}
