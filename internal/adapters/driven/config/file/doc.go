// Package file persists i18nscout settings in a TOML file.
//
// The default location is ~/.i18nscout/config.toml. Missing files are treated
// as empty settings; writes use 0600 permissions since the file may hold a
// token.
package file
