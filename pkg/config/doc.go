// Package config loads optional cfnhint settings from a file.
//
// 	                +-------------+
// 	                |   Config    |
// 	                | (Settings)  |
// 	                +------+------+
// 	                       |
// 	        +--------------+--------------+
// 	        |              |              |
// 	  +-----+-----+  +-----+-----+  +-----+-----+
// 	  |   YAML    |  |    HCL    |  |   JSON    |
// 	  |  Parser   |  |  Parser   |  |  Parser   |
// 	  +-----------+  +-----------+  +-----------+
//
// 🎯 Purpose:
// - Lets a repository pin its inputs and output mode in one file
// - Picks the parser by file extension
// - Rejects unknown fields in every format
//
// 🔄 Flow:
// 1. Load reads the file and picks a registered Parser
// 2. The parser decodes into Config
// 3. Validate fills defaults and checks values
// 4. The CLI overrides fields with flags that were set explicitly
//
// 🔍 Example (.cfnhint.hcl):
//
// 	inputs      = ["templates/**/*.yaml"]
// 	output_dir  = "${env.BUILD_DIR}/templates"
// 	concurrency = 4
package config
