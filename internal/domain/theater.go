package domain

type Theater struct {
	ID      int
	Name    string
	Address string
	City    string
}

// Hall identifiers are only unique within a theater, so a hall is always
// addressed by the (TheaterID, ID) pair.
type Hall struct {
	ID        int
	TheaterID int
	Name      string
	Capacity  int
}
