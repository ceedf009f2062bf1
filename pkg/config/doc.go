/*
Package config manages configuration parsing, presets and validation for striprc.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads the run configuration from .striprc.{hcl,yaml,yml,json}
- Layers .env, STRIPRC_* variables and CLI flags on top
- Expands built-in presets into ordered rules
- Validates globs and compiles every rule before a file is touched

🔄 Flow:
1. LoadConfig reads and decodes the file (unknown fields are errors)
2. ApplyEnv applies environment overrides
3. The CLI applies flag overrides
4. Resolve merges the preset and validates

📝 Rule order is significant: preset rules run first, then user rules, each one
seeing the output of the previous. HCL files may read the environment through
the env object:

	root = env.APP_DIR
	rule "drop-debug" {
	  pattern = "^\\s*debugger;\\n"
	}
*/
package config
