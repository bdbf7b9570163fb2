package app

var Ping = ping
