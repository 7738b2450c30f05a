// Package config loads site settings from a YAML file and the environment.
//
// Environment variables use the SITE_ prefix by default:
//
//	SITE_VIRTUAL_PATH=/shop
//	SITE_PHYSICAL_PATH=sites/shop
//	SITE_STATIC_PREFIXES=static,img
//	SITE_DEBUG=true
//
// The same keys in YAML:
//
//	virtual_path: /shop
//	physical_path: sites/shop
//	static_prefixes: [static, img]
//
// Values set in the environment win over the file.
package config
