package api

import (
	"crypto/rand"
	"encoding/hex"
)

// Answer names. Every downstream phase reads its parameters by these keys.
const (
	DBName          = "DB_NAME"
	DBUser          = "DB_USER"
	DBPassword      = "DB_PASSWORD"
	DBHost          = "DB_HOST"
	WPEnv           = "WP_ENV"
	WPURL           = "WP_URL"
	SiteTitle       = "SITE_TITLE"
	AdminUsername   = "ADMIN_USERNAME"
	AdminPassword   = "ADMIN_PW"
	AdminEmail      = "ADMIN_EMAIL"
	PluginPolylang  = "PLUGIN_POLYLANG"
	PluginNinja     = "PLUGIN_NINJAFORMS"
	PluginYoast     = "PLUGIN_YOAST"
	PluginWordfence = "PLUGIN_WORDFENCE"
	PluginDebug     = "PLUGIN_DEBUG"
	PluginACFPro    = "PLUGIN_ACF_PRO"
)

const adminPasswordBytes = 8

// QuestionKind selects how a question is presented and which value type it yields.
type QuestionKind string

const (
	KindInput   QuestionKind = "input"   // free text, yields string
	KindConfirm QuestionKind = "confirm" // yes/no, yields bool
	KindSecret  QuestionKind = "secret"  // masked text, yields string
)

// Question is one entry of the fixed prompt sequence.
type Question struct {
	Name    string
	Message string
	Kind    QuestionKind
	Default any
}

// DefaultString returns the default of a text question, or "" for confirm questions.
func (q Question) DefaultString() string {
	s, _ := q.Default.(string)
	return s
}

// DefaultBool returns the default of a confirm question, or false for text questions.
func (q Question) DefaultBool() bool {
	b, _ := q.Default.(bool)
	return b
}

// Questions returns the ordered question set. The admin password default is a fresh
// random token on every call.
func Questions() []Question {
	return []Question{
		{Name: DBName, Message: "Enter Database name", Kind: KindInput, Default: "stash_wp"},
		{Name: DBUser, Message: "Enter Database user", Kind: KindInput, Default: "root"},
		{Name: DBPassword, Message: "Enter Database password", Kind: KindInput, Default: "root"},
		{Name: DBHost, Message: "Enter Database host", Kind: KindInput, Default: "localhost"},
		{Name: WPEnv, Message: "Enter env", Kind: KindInput, Default: "development"},
		{Name: WPURL, Message: "Enter wordpress home url (no http://)", Kind: KindInput, Default: "dev.stash.io"},
		{Name: SiteTitle, Message: "Enter the title of the website", Kind: KindInput, Default: "Stash"},
		{Name: AdminUsername, Message: "Enter admin username", Kind: KindInput, Default: "dominator"},
		{Name: AdminPassword, Message: "Enter admin password", Kind: KindSecret, Default: RandomPassword()},
		{Name: AdminEmail, Message: "Enter admin email", Kind: KindInput, Default: "wp@unde.fined.io"},
		{Name: PluginPolylang, Message: "Do you want to install polylang?", Kind: KindConfirm, Default: false},
		{Name: PluginNinja, Message: "Do you want to install ninjaforms?", Kind: KindConfirm, Default: false},
		{Name: PluginYoast, Message: "Do you want to install yoast?", Kind: KindConfirm, Default: false},
		{Name: PluginWordfence, Message: "Do you want to install wordfence?", Kind: KindConfirm, Default: false},
		{Name: PluginDebug, Message: "Do you want to install debug plugins? (only for dev machine)", Kind: KindConfirm, Default: false},
		{Name: PluginACFPro, Message: "Do you want to use advanced custom fields? if yes input your API key.", Kind: KindInput, Default: ""},
	}
}

// RandomPassword returns 16 hex characters drawn from crypto/rand.
func RandomPassword() string {
	b := make([]byte, adminPasswordBytes)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
