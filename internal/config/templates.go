package config

// DefaultSettingsTemplate is written by "config init". Every value shown is
// the default.
const DefaultSettingsTemplate = `# aliasresolve settings
#
# Precedence: command-line flag > ALIASRESOLVE_* env > this file > default.

# Build configuration candidates tried before the built-in list.
# ${VAR} is expanded from the environment; a candidate naming an unset
# variable is skipped.
# config:
#   - "webpack.${TARGET}.config.js"

# Search upward from each request's context directory instead of using
# the working directory.
findConfig: false

# Probe order used when the build configuration declares no extensions.
extensions: [".jsx", ".js", ".json", ".css", ".scss", ".less"]

# What to do when no build configuration exists, or when it declares no
# alias table: "fail" or "pass-through".
onMissingConfig: fail
onMalformedConfig: fail

# Static decisions checked before the build configuration. Targets are
# used verbatim.
# overrides:
#   - specifier: "legacy/polyfill"
#     skip: true
#   - specifier: "config"
#     target: "/srv/app/src/config.prod.js"

# Memoize rewritten specifiers within a run.
cacheRewrites: false

# Maximum in-flight requests in serve mode.
concurrency: 8

node:
  binary: node

log:
  timestamps: true
`
