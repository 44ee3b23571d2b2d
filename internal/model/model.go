package model

type RoomID string

const EmptyRoomID RoomID = ""
