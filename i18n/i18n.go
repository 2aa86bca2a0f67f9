package i18n

import "strings"

// translations maps language -> code -> message. French is the fallback
// language: unknown languages resolve through fr, unknown codes resolve to
// the code itself so missing entries stay visible instead of blank.
var translations = map[string]map[string]string{
	"fr": {
		"required":               "Requis",
		"email_invalid":          "Adresse e-mail invalide",
		"alpha_dash":             "Lettres, chiffres, tirets et underscores uniquement",
		"too_short":              "Trop court",
		"confirmation_mismatch":  "La confirmation ne correspond pas",
		"date_invalid":           "Date invalide",
		"phone_invalid":          "Numéro de téléphone invalide",
		"username_taken":         "Ce nom d'utilisateur est déjà pris",
		"email_taken":            "Cette adresse e-mail est déjà utilisée",
		"flash_form_invalid":     "Formulaire invalide",
		"flash_user_created":     "L'utilisateur a été créé avec succès !",
		"flash_user_updated":     "L'utilisateur a été mis à jour avec succès !",
		"flash_user_deleted":     "L'utilisateur a été supprimé avec succès",
		"flash_profile_updated":  "Le profil a été mis à jour avec succès !",
		"flash_upload_failed":    "L'envoi du fichier a échoué",
		"flash_invalid_password": "Identifiants invalides",
	},
	"en": {
		"required":               "Required",
		"email_invalid":          "Invalid email address",
		"alpha_dash":             "Letters, numbers, dashes and underscores only",
		"too_short":              "Too short",
		"confirmation_mismatch":  "Confirmation does not match",
		"date_invalid":           "Invalid date",
		"phone_invalid":          "Invalid phone number",
		"username_taken":         "This username is already taken",
		"email_taken":            "This email address is already in use",
		"flash_form_invalid":     "Invalid form",
		"flash_user_created":     "User has been successfully created!",
		"flash_user_updated":     "User has been successfully updated!",
		"flash_user_deleted":     "User has been successfully deleted",
		"flash_profile_updated":  "Your profile has been successfully updated!",
		"flash_upload_failed":    "File upload failed",
		"flash_invalid_password": "Invalid credentials",
	},
}

// T translates code for lang, falling back to fr, then to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := translations["fr"][code]; ok {
		return msg
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "fr") {
			return "fr"
		}
	}
	return "fr"
}
