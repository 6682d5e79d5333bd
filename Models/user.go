package Models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email      string `json:"email" gorm:"unique"`
	Name       string `json:"name"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission"`
}
