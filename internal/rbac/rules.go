package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"learner": {
		"assessment:view",
		"session:create",
		"session:answer",
		"session:submit",
		"session:view-own",
		"result:view-own",
		"maturity:score",
	},
	"author": {
		"assessment:create",
		"assessment:view",
		"assessment:view-full",
		"result:view-all",
		"maturity:score",
	},
	"admin": {
		"*", // everything
	},
}
