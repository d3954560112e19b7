package auth

// Permission codes checked by protected operations. Roles are bundles of
// these codes, seeded at install time; the codes themselves are the only
// coupling between route guards and the permission store.
const (
	PermissionLedgerView     = "ledger.view"
	PermissionLedgerEdit     = "ledger.edit"
	PermissionIdentityManage = "identity.manage"
	PermissionTenantManage   = "tenant.manage"
	PermissionCurrencyManage = "currency.manage"
	PermissionAuditView      = "audit.view"
)
