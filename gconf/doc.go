/*
Package gconf keeps the configuration of each extension in the state,
under "_c:<package>". It is written from the "conf" section of the genesis
file and is validated on every save.

A missing configuration is a setup error. Extensions refuse to process
messages until one is saved.
*/
package gconf
