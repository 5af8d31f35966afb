// Package config loads autoskills settings using Viper.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional config.yaml, and environment variables. The config file is
// searched in the current directory and in ~/.config/autoskills (or the
// directory named by AUTOSKILLS_CONFIG_DIR):
//
//	skills_dir: ~/.autoskills/personal-skills
//	agents_skills_dir: ~/.agents/skills
//	search:
//	  command: [npx, skills, find]
//	  timeout: 0s
//	  max_results: 10
//	install:
//	  clone_base_url: https://github.com
//	  depth: 1
//	  timeout: 0s
//
// Every key may be overridden with an AUTOSKILLS_ prefixed variable where dots
// become underscores (AUTOSKILLS_INSTALL_DEPTH). Two historical names are also
// honored: AUTOSKILLS_DIR for skills_dir and AGENTS_SKILLS_DIR for
// agents_skills_dir. AUTOSKILLS_DEBUG=1 enables debug logging.
//
// Each call to [Load] builds its own Viper instance; the global Viper is
// never touched.
package config
