package models

type UserStatus string
type UserRole string
type JobStatus string
type ApprovalStatus string
type ApplicationStatus string
type BudgetType string
type ReviewKind string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"

	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"

	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"

	// client_to_worker: три под-оценки, усредняются в общий rating.
	// worker_to_client: одна общая оценка.
	ReviewKindClientToWorker ReviewKind = "client_to_worker"
	ReviewKindWorkerToClient ReviewKind = "worker_to_client"
)
