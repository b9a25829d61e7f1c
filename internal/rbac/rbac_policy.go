package rbac

import "go-worktrack/internal/shared/contextutil"

const (
	ResourceEmployee       = "employee"
	ResourceEmployeeOption = "employee_option"
	ResourceProfile        = "profile"
	ResourceOwnProfile     = "own_profile"
	ResourceCelebration    = "celebration"
	ResourceProject        = "project"
	ResourceTask           = "task"
	ResourceOwnTask        = "own_task"
	ResourceTaskDetail     = "task_detail"
	ResourceLeaveType      = "leave_type"
	ResourceLeave          = "leave"
	ResourceOwnLeave       = "own_leave"
	ResourceExpenseType    = "expense_type"
	ResourceExpense        = "expense"
	ResourceOwnExpense     = "own_expense"
	ResourceAsset          = "asset"
	ResourceOwnAsset       = "own_asset"
	ResourceWiki           = "wiki"
	ResourcePolicy         = "policy"
	ResourceCareer         = "career"
	ResourceNotification   = "notification"
)

const (
	ActionRead      = "read"
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionPurge     = "purge"
	ActionDecide    = "decide"
	ActionExport    = "export"
	ActionAllocate  = "allocate"
	ActionReport    = "report"
	ActionResolve   = "resolve"
	ActionAnalytics = "analytics"
	ActionAll       = "*"
)

// employeePolicies are the self-service permissions every employee holds.
var employeePolicies = [][]string{
	{contextutil.RoleEmployee, ResourceEmployeeOption, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnProfile, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnProfile, ActionUpdate},
	{contextutil.RoleEmployee, ResourceCelebration, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnTask, ActionRead},
	{contextutil.RoleEmployee, ResourceTaskDetail, ActionRead},
	{contextutil.RoleEmployee, ResourceTaskDetail, ActionCreate},
	{contextutil.RoleEmployee, ResourceTaskDetail, ActionUpdate},
	{contextutil.RoleEmployee, ResourceLeaveType, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnLeave, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnLeave, ActionCreate},
	{contextutil.RoleEmployee, ResourceOwnLeave, ActionDelete},
	{contextutil.RoleEmployee, ResourceExpenseType, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnExpense, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnExpense, ActionCreate},
	{contextutil.RoleEmployee, ResourceOwnExpense, ActionDelete},
	{contextutil.RoleEmployee, ResourceOwnAsset, ActionRead},
	{contextutil.RoleEmployee, ResourceOwnAsset, ActionReport},
	{contextutil.RoleEmployee, ResourceWiki, ActionRead},
	{contextutil.RoleEmployee, ResourcePolicy, ActionRead},
	{contextutil.RoleEmployee, ResourceCareer, ActionRead},
	{contextutil.RoleEmployee, ResourceNotification, ActionRead},
	{contextutil.RoleEmployee, ResourceNotification, ActionUpdate},
}

// adminResources are fully managed by admins; admins also inherit the employee role.
var adminResources = []string{
	ResourceEmployee,
	ResourceProfile,
	ResourceProject,
	ResourceTask,
	ResourceLeaveType,
	ResourceLeave,
	ResourceExpenseType,
	ResourceExpense,
	ResourceAsset,
	ResourceWiki,
	ResourcePolicy,
	ResourceCareer,
}

func defaultPolicies() [][]string {
	policies := make([][]string, 0, len(employeePolicies)+len(adminResources))
	policies = append(policies, employeePolicies...)
	for _, res := range adminResources {
		policies = append(policies, []string{contextutil.RoleAdmin, res, ActionAll})
	}
	return policies
}
