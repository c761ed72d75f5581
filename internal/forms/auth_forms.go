package forms

import (
	"strings"
	"unicode/utf8"
)

type RegisterForm struct {
	Username string `form:"username" binding:"required,min=3,max=80"`
	Password string `form:"password" binding:"required,min=6"`
}

func (f *RegisterForm) Clean(errs Errors) {
	f.Username = strings.TrimSpace(f.Username)
	if !errs.Has("username") && utf8.RuneCountInString(f.Username) < 3 {
		errs.Add("username", "Username must be at least 3 characters long.")
	}
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (f *LoginForm) Clean(errs Errors) {
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" && !errs.Has("username") {
		errs.Add("username", "Username is required.")
	}
}
