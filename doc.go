/*
Package cloudcli is the command dispatch and argument resolution engine for a cloud command line tool.

The packages in this module map to the stages of handling a command line.

  - [github.com/saylorsolutions/cloudcli/argument] declares typed arguments and converts raw values.
  - [github.com/saylorsolutions/cloudcli/cmdtree] holds the registered command paths, and finds the best match for user input.
  - [github.com/saylorsolutions/cloudcli/cli] parses options, checks requirements, renders help, and runs commands.
  - [github.com/saylorsolutions/cloudcli/completion] generates shell completion scripts from the command tree.

The env, slogx, and signalx packages carry the configuration, logging, and signal handling used by the cloud command in cmd/cloud.
*/
package cloudcli
