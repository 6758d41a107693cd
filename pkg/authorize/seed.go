package authorize

import (
	"context"
	"log/slog"
)

// DefaultPolicies is the baseline screen access per user type.
var DefaultPolicies = []PermissionPolicy{
	// Admin: everything
	{RoleAdmin, WildcardResource, WildcardAction, EffectAllow},

	// Doctor: clinical records, read-only staff and facilities
	{RoleDoctor, ResourcePatients, WildcardAction, EffectAllow},
	{RoleDoctor, ResourceDiagnoses, WildcardAction, EffectAllow},
	{RoleDoctor, ResourcePrescriptions, WildcardAction, EffectAllow},
	{RoleDoctor, ResourceAppointments, WildcardAction, EffectAllow},
	{RoleDoctor, ResourceDoctors, ActionRead, EffectAllow},
	{RoleDoctor, ResourceMedicalCenters, ActionRead, EffectAllow},
	{RoleDoctor, ResourceBackend, ActionRead, EffectAllow},
	{RoleDoctor, ResourcePatients, ActionDelete, EffectDeny},

	// Patient: read-only
	{RolePatient, ResourceAppointments, ActionRead, EffectAllow},
	{RolePatient, ResourcePrescriptions, ActionRead, EffectAllow},
	{RolePatient, ResourceDiagnoses, ActionRead, EffectAllow},
	{RolePatient, ResourceDoctors, ActionRead, EffectAllow},
	{RolePatient, ResourceMedicalCenters, ActionRead, EffectAllow},
}

// SeedDefaultPolicies loads DefaultPolicies into auth.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	for _, p := range DefaultPolicies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action, "effect", p.Effect)
		}
	}

	logger.Debug("seeded default RBAC policies", "count", len(DefaultPolicies))
	return nil
}
