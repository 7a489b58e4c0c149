package model

// Cereal represents one cereal's nutritional record.
type Cereal struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Mfr      string  `json:"mfr" db:"mfr"`
	Type     string  `json:"type" db:"type"`
	Calories int     `json:"calories" db:"calories"`
	Protein  int     `json:"protein" db:"protein"`
	Fat      int     `json:"fat" db:"fat"`
	Sodium   int     `json:"sodium" db:"sodium"`
	Fiber    float64 `json:"fiber" db:"fiber"`
	Carbo    float64 `json:"carbo" db:"carbo"`
	Sugars   int     `json:"sugars" db:"sugars"`
	Potass   int     `json:"potass" db:"potass"`
	Vitamins int     `json:"vitamins" db:"vitamins"`
	Shelf    int     `json:"shelf" db:"shelf"`
	Weight   float64 `json:"weight" db:"weight"`
	Cups     float64 `json:"cups" db:"cups"`
	Rating   float64 `json:"rating" db:"rating"`
}

// CerealRequest is the create-or-update payload. ID is optional: absent
// means insert a new record, present means overwrite the record with that
// identifier.
type CerealRequest struct {
	ID       *int    `json:"id,omitempty"`
	Name     string  `json:"name"`
	Mfr      string  `json:"mfr"`
	Type     string  `json:"type"`
	Calories int     `json:"calories"`
	Protein  int     `json:"protein"`
	Fat      int     `json:"fat"`
	Sodium   int     `json:"sodium"`
	Fiber    float64 `json:"fiber"`
	Carbo    float64 `json:"carbo"`
	Sugars   int     `json:"sugars"`
	Potass   int     `json:"potass"`
	Vitamins int     `json:"vitamins"`
	Shelf    int     `json:"shelf"`
	Weight   float64 `json:"weight"`
	Cups     float64 `json:"cups"`
	Rating   float64 `json:"rating"`
}

// Cereal converts the request payload into a record. The ID is zero when
// the request carries none.
func (r *CerealRequest) Cereal() *Cereal {
	c := &Cereal{
		Name:     r.Name,
		Mfr:      r.Mfr,
		Type:     r.Type,
		Calories: r.Calories,
		Protein:  r.Protein,
		Fat:      r.Fat,
		Sodium:   r.Sodium,
		Fiber:    r.Fiber,
		Carbo:    r.Carbo,
		Sugars:   r.Sugars,
		Potass:   r.Potass,
		Vitamins: r.Vitamins,
		Shelf:    r.Shelf,
		Weight:   r.Weight,
		Cups:     r.Cups,
		Rating:   r.Rating,
	}
	if r.ID != nil {
		c.ID = *r.ID
	}
	return c
}
