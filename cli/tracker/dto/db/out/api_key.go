package out

type ApiKey struct {
	ID   int32  `json:"id" gorm:"column:id"`
	Key  uint64 `json:"key" gorm:"column:key"`
	Name string `json:"name"`
}
