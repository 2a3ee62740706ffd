package menus

const (
	ModelMenuObject     = "MenuObject"
	ModelMenuItemObject = "MenuItemObject"
)

// PrivacyOverride reports whether the privacy decision for a model should be
// forced. Menus and menu items are always readable: the anonymous API user
// usually lacks the capability the host checks for them.
func PrivacyOverride(modelName string) (private bool, overridden bool) {
	switch modelName {
	case ModelMenuObject, ModelMenuItemObject:
		return false, true
	default:
		return false, false
	}
}
