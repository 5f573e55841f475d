package domain

// RemoteConfig est le document de configuration récupéré au démarrage
// (best-effort) et persisté dans le cache clé/valeur.
type RemoteConfig struct {
	// Base de l'API WordPress (ex: https://api.radioteca.fm/wp-json/wp/v2).
	APIBaseURL string `json:"apiBaseUrl"`

	// Base des médias (images, fichiers audio servis par le CDN).
	MediaBaseURL string `json:"mediaBaseUrl,omitempty"`
}

func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		APIBaseURL:   "https://api.radioteca.fm/wp-json/wp/v2",
		MediaBaseURL: "https://media.radioteca.fm",
	}
}
