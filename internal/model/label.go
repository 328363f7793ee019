package model

// Sides of a label
const (
	SideTo   = "to"
	SideFrom = "from"
)

// LabelPair is one label: the recipient printed on top and the sender below
type LabelPair struct {
	To   Address `json:"to"`
	From Address `json:"from"`
}

// NewLabelPair validates both parties. A recipient without an honorific
// gets DefaultHonorific when defaultHonorific is true.
func NewLabelPair(to, from Address, defaultHonorific bool) (LabelPair, error) {
	if defaultHonorific && to.Honorific == "" {
		to.Honorific = DefaultHonorific
	}
	t, err := New(to)
	if err != nil {
		return LabelPair{}, WithSide(err, SideTo)
	}
	f, err := New(from)
	if err != nil {
		return LabelPair{}, WithSide(err, SideFrom)
	}
	return LabelPair{To: t, From: f}, nil
}
