package entity

// Model carries the store-assigned integer identifier shared by every table.
type Model struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`
}

func (m *Model) GetID() int {
	return m.ID
}

func (m *Model) SetID(id int) {
	m.ID = id
}

// Record is satisfied by a pointer to any entity embedding Model.
type Record[E any] interface {
	*E
	GetID() int
	SetID(id int)
}
