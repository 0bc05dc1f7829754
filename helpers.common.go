package main

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec used to persist book records into external stores.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrUnknownStorage = errors.New("unknown storage backend")

const (
	MemoryStorage string = "memory"
	BoltStorage   string = "bolt"
	RedisStorage  string = "redis"

	SessionIDPrefix string = "s"
)
