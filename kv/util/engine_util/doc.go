package engine_util

/*
An engine is a low-level system for storing key/value pairs locally,
without distribution or transaction support. This package contains the
code a tablet uses to interact with its engine.

engine_util includes:

* engines: the engine handles owned by one tablet.
* write_batch: code to batch writes into a single atomic engine update.
* util: point reads and raw iteration over the engine.
*/
