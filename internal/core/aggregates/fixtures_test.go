package aggregates

const playerResponse = `{
  "playabilityStatus": {"status": "OK", "playableInEmbed": true},
  "videoDetails": {"videoId": "v1", "title": "First", "author": "Artist", "channelId": "UC1", "lengthSeconds": 212},
  "microformat": {"microformatDataRenderer": {
    "title": "First - Artist",
    "urlCanonical": "https://music.example/watch?v=v1",
    "description": "Provided to the service by a label.",
    "tags": ["first", "artist"],
    "familySafe": true,
    "category": "Music"
  }},
  "playbackTracking": {"videostatsPlaybackUrl": {"baseUrl": "https://stats/playback"}},
  "streamingData": {
    "expiresInSeconds": "21540",
    "adaptiveFormats": [
      {"itag": 251, "mimeType": "audio/webm; codecs=\"opus\"", "bitrate": 135000, "audioQuality": "AUDIO_QUALITY_MEDIUM",
       "audioSampleRate": "48000", "audioChannels": 2, "contentLength": "3456789", "approxDurationMs": "212041",
       "initRange": {"start": "0", "end": "265"}, "indexRange": {"start": "266", "end": "632"},
       "url": "https://media/251"},
      {"itag": 140, "mimeType": "audio/mp4; codecs=\"mp4a.40.2\"", "bitrate": 130000, "audioQuality": "AUDIO_QUALITY_MEDIUM",
       "audioSampleRate": "44100", "audioChannels": 2, "contentLength": "3432100", "approxDurationMs": "212091",
       "initRange": {"start": "0", "end": "631"}, "indexRange": {"start": "632", "end": "923"},
       "url": "https://media/140"}
    ]
  }
}`

const nextResponse = `{
  "responseContext": {"visitorData": "x"},
  "contents": {"singleColumnMusicWatchNextResultsRenderer": {"tabbedRenderer": {"watchNextTabbedResultsRenderer": {"tabs": [
    {"tabRenderer": {"title": "Up next", "selected": true, "content": {"musicQueueRenderer": {"content": {"playlistPanelRenderer": {
      "title": "Mix",
      "contents": [
        {"playlistPanelVideoRenderer": {"videoId": "v1", "title": {"runs": [{"text": "First"}]}, "lengthText": {"simpleText": "3:32"}, "selected": true}},
        {"automixPreviewVideoRenderer": {"content": {"automixPlaylistVideoRenderer": {"navigationEndpoint": {"watchPlaylistEndpoint": {"playlistId": "RDAMVMv1", "params": "p"}}}}}}
      ]
    }}}}}},
    {"tabRenderer": {"title": "Lyrics", "endpoint": {"browseEndpoint": {"browseId": "MPLYt_1", "browseEndpointContextSupportedConfigs": {"browseEndpointContextMusicConfig": {"pageType": "MUSIC_PAGE_TYPE_TRACK_LYRICS"}}}}}},
    {"tabRenderer": {"title": "Related", "endpoint": {"browseEndpoint": {"browseId": "MPTRt_1", "browseEndpointContextSupportedConfigs": {"browseEndpointContextMusicConfig": {"pageType": "MUSIC_PAGE_TYPE_TRACK_RELATED"}}}}}}
  ]}}}},
  "currentVideoEndpoint": {"watchEndpoint": {"videoId": "v1"}},
  "playerOverlays": {"playerOverlayRenderer": {"browserMediaSession": {"browserMediaSessionRenderer": {"album": {"runs": [{"text": "Album"}]}}}}}
}`

// nextWithPlaylist is a watch page whose queue is already a playlist.
const nextWithPlaylist = `{
  "contents": {"singleColumnMusicWatchNextResultsRenderer": {"tabbedRenderer": {"watchNextTabbedResultsRenderer": {"tabs": [
    {"tabRenderer": {"title": "Up next", "content": {"musicQueueRenderer": {"content": {"playlistPanelRenderer": {
      "title": "Album",
      "playlistId": "OLAK5uy",
      "contents": [{"playlistPanelVideoRenderer": {"videoId": "v1", "title": {"runs": [{"text": "First"}]}}}]
    }}}}}}
  ]}}}}
}`

const automixPage = `{
  "contents": {"singleColumnMusicWatchNextResultsRenderer": {"tabbedRenderer": {"watchNextTabbedResultsRenderer": {"tabs": [
    {"tabRenderer": {"title": "Up next", "content": {"musicQueueRenderer": {"content": {"playlistPanelRenderer": {
      "title": "Mix - First",
      "playlistId": "RDAMVMv1",
      "isInfinite": true,
      "contents": [
        {"playlistPanelVideoRenderer": {"videoId": "v1", "title": {"runs": [{"text": "First"}]}}},
        {"playlistPanelVideoRenderer": {"videoId": "v2", "title": {"runs": [{"text": "Second"}]}}}
      ],
      "continuations": [{"nextRadioContinuationData": {"continuation": "PANEL2"}}]
    }}}}}}
  ]}}}}
}`

const automixContinuation = `{
  "continuationContents": {"playlistPanelContinuation": {
    "playlistId": "RDAMVMv1",
    "contents": [{"playlistPanelVideoRenderer": {"videoId": "v3", "title": {"runs": [{"text": "Third"}]}}}]
  }}
}`

const lyricsPage = `{
  "contents": {"sectionListRenderer": {"contents": [{"musicDescriptionShelfRenderer": {
    "description": {"runs": [{"text": "la la la"}]},
    "footer": {"runs": [{"text": "Source: Lyrics Co"}]},
    "maxCollapsedLines": 2
  }}]}}
}`

const relatedPage = `{
  "contents": {"sectionListRenderer": {"contents": [
    {"musicCarouselShelfRenderer": {"contents": []}},
    {"musicDescriptionShelfRenderer": {"header": {"runs": [{"text": "About the artist"}]}, "description": {"runs": [{"text": "Bio"}]}}}
  ]}}
}`

const messagePage = `{
  "contents": {"messageRenderer": {"text": {"runs": [{"text": "Lyrics not available"}]}}}
}`

const kidsPage = `{
  "header": {"c4TabbedHeaderRenderer": {"channelId": "UCkids", "title": "Kids Channel"}},
  "contents": {"sectionListRenderer": {"contents": [{"itemSectionRenderer": {
    "contents": [
      {"videoRenderer": {"videoId": "k1", "title": {"simpleText": "Song One"}}},
      {"videoRenderer": {"videoId": "k2", "title": {"simpleText": "Song Two"}}}
    ],
    "continuations": [{"nextContinuationData": {"continuation": "KIDS2"}}]
  }}]}}
}`

const kidsContinuation = `{
  "continuationContents": {"itemSectionContinuation": {
    "contents": [{"videoRenderer": {"videoId": "k3", "title": {"simpleText": "Song Three"}}}]
  }}
}`

const feedPage1 = `{
  "contents": {"sectionListRenderer": {"contents": [{"itemSectionRenderer": {
    "contents": [{"videoRenderer": {"videoId": "f1"}}]
  }}]}},
  "continuation": "FEED2"
}`

const feedPage2 = `{
  "continuationContents": {"itemSectionContinuation": {
    "contents": [{"videoRenderer": {"videoId": "f2"}}]
  }}
}`
