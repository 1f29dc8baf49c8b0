// Package config resolves the Kleber API key.
//
// The key comes from the first source that provides one:
//
//  1. An explicit key (Options.APIKey)
//  2. The KLEBER_API_KEY environment variable
//  3. A JSON config file with an "api_key" field
//
// # Config File Lookup
//
// Only one config file is read. It is picked in this order:
//
//  1. .kleberrc next to the kleber binary, if it exists
//  2. Options.ConfigFile, or the KLEBER_CONFIG environment variable
//  3. ~/.kleberrc
//
// A missing or malformed file yields kleber.ErrConfigUnreadable. A file
// without a usable key yields kleber.ErrCredentialMissing.
//
// # Usage
//
//	cfg, err := config.Load(config.Options{ConfigFile: "/etc/kleber.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("using key from", cfg.Path)
package config
