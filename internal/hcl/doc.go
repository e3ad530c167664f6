// Package hcl implements config.Loader and config.Writer for HCL files.
//
// A configuration file has at most one class block and one labels block:
//
//	class {
//	  name    = "OrderSync"
//	  sharing = "without sharing"
//	  indent  = 2
//	}
//
//	labels {
//	  if_true = ["approved", "yes"]
//	  loop_exit = "finished, done"
//	}
//
// Expressions may read environment variables through the env object, for
// example name = env.CLASS_NAME.
package hcl
