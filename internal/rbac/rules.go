package rbac

const (
	PermQuizCreate = "quiz:create"
	PermQuizView   = "quiz:view"
	PermQuizList   = "quiz:list"
	PermQuizExport = "quiz:export"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	"student": {
		PermQuizView,
	},
	"teacher": {
		"quiz:*",
	},
	"admin": {
		"*",
	},
}
