package entity

type Account struct {
	BaseEntity
	UserName string `json:"userName" gorm:"unique;type:varchar(50)"`
	Password string `json:"password" gorm:"type:varchar(255)"`
	User     User   `gorm:"foreignKey:AuthId;references:ID"`
}

type User struct {
	BaseEntity
	Name   string `json:"name" gorm:"type:varchar(255)"`
	Email  string `json:"email" gorm:"unique;type:varchar(100)"`
	Avatar string `json:"avatar,omitempty" gorm:"type:text"`
	AuthId string `json:"authId" gorm:"type:varchar(255);unique"`

	Messages    []Message    `json:"-" gorm:"foreignKey:SenderID"`
	Memberships []ChatMember `json:"-" gorm:"foreignKey:UserID"`
}
