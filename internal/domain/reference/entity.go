package reference

type City struct {
	ID   int
	Name string
}

type JobCategory struct {
	ID   int
	Name string
}
