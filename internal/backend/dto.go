package backend

// PagedListResponse is the Spring Data page envelope
type PagedListResponse[T any] struct {
	Content          []T      `json:"content"`
	Pageable         Pageable `json:"pageable"`
	Last             bool     `json:"last"`
	TotalElements    int64    `json:"totalElements"`
	TotalPages       int      `json:"totalPages"`
	First            bool     `json:"first"`
	NumberOfElements int      `json:"numberOfElements"`
	Size             int      `json:"size"`
	Number           int      `json:"number"`
	Sort             Sort     `json:"sort"`
	Empty            bool     `json:"empty"`
}

// Pageable echoes the requested page
type Pageable struct {
	PageNumber int  `json:"pageNumber"`
	PageSize   int  `json:"pageSize"`
	Offset     int  `json:"offset"`
	Paged      bool `json:"paged"`
	Unpaged    bool `json:"unpaged"`
	Sort       Sort `json:"sort"`
}

// Sort describes the ordering of a page
type Sort struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}

// MovieDTO is a movie as sent by the API
type MovieDTO struct {
	ID          int64   `json:"id"`
	MovieURL    string  `json:"movieUrl"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"posterUrl"`
	ReleaseYear int     `json:"releaseYear"`
	LengthMin   float64 `json:"lengthMin"`
	IMDbRating  float64 `json:"imdbRating"`
	RatingCount float64 `json:"ratingCount"`
	Plot        string  `json:"plot"`
	Directors   string  `json:"directors"`
	Writers     string  `json:"writers"`
	Stars       string  `json:"stars"`
	Genres      string  `json:"genres"`
}

// LoginRequest is the body of /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistrationRequest is the body of /api/auth/register
type RegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest is the body of /api/auth/google
type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

// LoginResponse is returned by every sign-in endpoint
type LoginResponse struct {
	UserInfo    UserInfoDTO `json:"userInfo"`
	JWTResponse JWTResponse `json:"jwtResponse"`
}

// UserInfoDTO is the public profile of the signed-in user
type UserInfoDTO struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// JWTResponse carries the token pair
type JWTResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
