package config

import _ "embed"

// DefaultConfigYAML 内置的默认配置
//
//go:embed config.yaml
var DefaultConfigYAML []byte
