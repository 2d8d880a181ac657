package models

type Role string

const (
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)
