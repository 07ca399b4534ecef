// Package constants provides shared constant values used throughout the application.
//
// The permissions_const.go file defines the named capabilities understood by the
// capability resolver. Base capabilities are granted wholesale to platform
// administrators; scoped permissions additionally require a locale (and sometimes
// project) context and are resolved against the team-assignment tables.
package constants

// Base Capabilities define site-wide permissions. Any actor carrying the
// platform administrator flag holds all of these.
const (
	// CapViewDashboard allows viewing the progress dashboard.
	CapViewDashboard = "localewatch_view_dashboard"

	// CapManageSettings allows updating the settings document.
	CapManageSettings = "localewatch_manage_settings"

	// CapManageProjects allows managing the watched project list.
	CapManageProjects = "localewatch_manage_projects"

	// CapManageTeams allows editing the team-assignment tables.
	CapManageTeams = "localewatch_manage_teams"

	// CapManageNotifications allows editing notification configuration.
	CapManageNotifications = "localewatch_manage_notifications"

	// CapAssignProjects allows assigning projects to editors.
	CapAssignProjects = "localewatch_assign_projects"
)

// Scoped Permission Names identify the meta-permissions whose grant decision
// depends on runtime team-assignment data rather than a static role.
const (
	// PermManageLocale requires locale-manager or general-editor membership.
	PermManageLocale = "localewatch_manage_locale"

	// PermManageProjectLocale additionally accepts project-editor membership
	// for the given project.
	PermManageProjectLocale = "localewatch_manage_project_locale"

	// PermAssignUserLocale requires locale-manager membership only.
	PermAssignUserLocale = "localewatch_assign_user_locale"

	// PermViewReportsLocale mirrors PermManageProjectLocale for read access.
	PermViewReportsLocale = "localewatch_view_reports_locale"
)

// Nonce Actions name the anti-forgery token actions verified by the settings
// update pipeline.
const (
	// ActionUpdateSettings is the nonce action for settings updates.
	ActionUpdateSettings = "localewatch_update_settings"
)
